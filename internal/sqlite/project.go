package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gestorhq/gestor/internal/domain/project"
	"github.com/gestorhq/gestor/internal/repository"
)

// ProjectRepository implements project.Repository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project and its assignments
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO projects (id, client_id, channel_id, name, description, status,
			channel_rate, consultant_rate, estimated_hours, worked_hours,
			start_date, end_date, created_at, modified_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = tx.ExecContext(ctx, query,
		proj.ID,
		nullString(proj.ClientID),
		nullString(proj.ChannelID),
		proj.Name,
		proj.Description,
		proj.Status,
		proj.ChannelRate,
		proj.ConsultantRate,
		proj.EstimatedHours,
		proj.WorkedHours,
		nullTime(proj.StartDate),
		nullTime(proj.EndDate),
		proj.CreatedAt,
		proj.ModifiedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	if err := insertAssignments(ctx, tx, proj.ID, proj.Assignments); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Get retrieves a project by ID, including its assignments
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	query := `
		SELECT id, client_id, channel_id, name, description, status,
			channel_rate, consultant_rate, estimated_hours, worked_hours,
			start_date, end_date, created_at, modified_at
		FROM projects
		WHERE id = ?
	`

	proj, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	assignments, err := r.loadAssignments(ctx, id)
	if err != nil {
		return nil, err
	}
	proj.Assignments = assignments

	return proj, nil
}

// Update rewrites a project row and replaces its assignments
func (r *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE projects
		SET client_id = ?, channel_id = ?, name = ?, description = ?, status = ?,
			channel_rate = ?, consultant_rate = ?, estimated_hours = ?, worked_hours = ?,
			start_date = ?, end_date = ?, modified_at = ?
		WHERE id = ?
	`

	result, err := tx.ExecContext(ctx, query,
		nullString(proj.ClientID),
		nullString(proj.ChannelID),
		proj.Name,
		proj.Description,
		proj.Status,
		proj.ChannelRate,
		proj.ConsultantRate,
		proj.EstimatedHours,
		proj.WorkedHours,
		nullTime(proj.StartDate),
		nullTime(proj.EndDate),
		proj.ModifiedAt,
		proj.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM project_assignments WHERE project_id = ?`, proj.ID); err != nil {
		return fmt.Errorf("failed to clear assignments: %w", err)
	}
	if err := insertAssignments(ctx, tx, proj.ID, proj.Assignments); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Delete removes a project; assignments and demands cascade
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List returns projects matching the options, with assignments attached
func (r *ProjectRepository) List(ctx context.Context, opts project.ListOptions) ([]project.Project, error) {
	query := `
		SELECT id, client_id, channel_id, name, description, status,
			channel_rate, consultant_rate, estimated_hours, worked_hours,
			start_date, end_date, created_at, modified_at
		FROM projects
	`

	var conditions []string
	var args []any

	if len(opts.Statuses) > 0 {
		placeholders := make([]string, len(opts.Statuses))
		for i, st := range opts.Statuses {
			placeholders[i] = "?"
			args = append(args, st)
		}
		conditions = append(conditions, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ", ")))
	}
	if opts.ClientID != "" {
		conditions = append(conditions, "client_id = ?")
		args = append(args, opts.ClientID)
	}
	if opts.ChannelID != "" {
		conditions = append(conditions, "channel_id = ?")
		args = append(args, opts.ChannelID)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *proj)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	if err := r.attachAssignments(ctx, projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// AddWorkedHours atomically adds hours to a project's worked total and, when
// the consultant holds an assignment on the project, to that assignment
func (r *ProjectRepository) AddWorkedHours(ctx context.Context, projectID, consultantID string, hours float64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE projects
		SET worked_hours = worked_hours + ?, modified_at = ?
		WHERE id = ?
	`, hours, time.Now().UTC(), projectID)
	if err != nil {
		return fmt.Errorf("failed to add worked hours: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE project_assignments
		SET hours_logged = hours_logged + ?
		WHERE project_id = ? AND consultant_id = ?
	`, hours, projectID, consultantID)
	if err != nil {
		return fmt.Errorf("failed to update assignment hours: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*project.Project, error) {
	var proj project.Project
	var clientID, channelID sql.NullString
	var startDate, endDate sql.NullTime

	err := row.Scan(
		&proj.ID,
		&clientID,
		&channelID,
		&proj.Name,
		&proj.Description,
		&proj.Status,
		&proj.ChannelRate,
		&proj.ConsultantRate,
		&proj.EstimatedHours,
		&proj.WorkedHours,
		&startDate,
		&endDate,
		&proj.CreatedAt,
		&proj.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}

	proj.ClientID = clientID.String
	proj.ChannelID = channelID.String
	proj.StartDate = startDate.Time
	proj.EndDate = endDate.Time
	return &proj, nil
}

func insertAssignments(ctx context.Context, tx *sql.Tx, projectID string, assignments []project.Assignment) error {
	for _, a := range assignments {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO project_assignments (project_id, consultant_id, hourly_rate, hours_logged)
			VALUES (?, ?, ?, ?)
		`, projectID, a.ConsultantID, a.HourlyRate, a.HoursLogged)
		if err != nil {
			if isForeignKeyViolation(err) {
				return repository.ErrForeignKeyViolation
			}
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}
	return nil
}

func (r *ProjectRepository) loadAssignments(ctx context.Context, projectID string) ([]project.Assignment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT consultant_id, hourly_rate, hours_logged
		FROM project_assignments
		WHERE project_id = ?
		ORDER BY consultant_id
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}
	defer rows.Close()

	var assignments []project.Assignment
	for rows.Next() {
		var a project.Assignment
		if err := rows.Scan(&a.ConsultantID, &a.HourlyRate, &a.HoursLogged); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignment rows: %w", err)
	}
	return assignments, nil
}

func (r *ProjectRepository) attachAssignments(ctx context.Context, projects []project.Project) error {
	if len(projects) == 0 {
		return nil
	}

	placeholders := make([]string, len(projects))
	args := make([]any, len(projects))
	index := make(map[string]int, len(projects))
	for i := range projects {
		placeholders[i] = "?"
		args[i] = projects[i].ID
		index[projects[i].ID] = i
	}

	query := fmt.Sprintf(`
		SELECT project_id, consultant_id, hourly_rate, hours_logged
		FROM project_assignments
		WHERE project_id IN (%s)
		ORDER BY project_id, consultant_id
	`, strings.Join(placeholders, ", "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load assignments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var projectID string
		var a project.Assignment
		if err := rows.Scan(&projectID, &a.ConsultantID, &a.HourlyRate, &a.HoursLogged); err != nil {
			return fmt.Errorf("failed to scan assignment: %w", err)
		}
		if i, ok := index[projectID]; ok {
			projects[i].Assignments = append(projects[i].Assignments, a)
		}
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating assignment rows: %w", err)
	}
	return nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
