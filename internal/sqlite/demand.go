package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gestorhq/gestor/internal/domain/demand"
	"github.com/gestorhq/gestor/internal/repository"
)

// DemandRepository implements demand.Repository for SQLite
type DemandRepository struct {
	db *DB
}

// NewDemandRepository creates a new DemandRepository
func NewDemandRepository(db *DB) *DemandRepository {
	return &DemandRepository{db: db}
}

const demandColumns = `
	d.id, d.project_id, d.title, d.description, d.status, d.priority,
	d.estimated_hours, COALESCE(SUM(te.hours), 0) AS logged_hours,
	d.created_at, d.modified_at
`

// Create creates a new demand
func (r *DemandRepository) Create(ctx context.Context, dem *demand.Demand) error {
	query := `
		INSERT INTO demands (id, project_id, title, description, status, priority, estimated_hours, created_at, modified_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		dem.ID,
		dem.ProjectID,
		dem.Title,
		dem.Description,
		dem.Status,
		dem.Priority,
		dem.EstimatedHours,
		dem.CreatedAt,
		dem.ModifiedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create demand: %w", err)
	}
	return nil
}

// Get retrieves a demand by ID with its logged hours
func (r *DemandRepository) Get(ctx context.Context, id string) (*demand.Demand, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM demands d
		LEFT JOIN time_entries te ON te.demand_id = d.id
		WHERE d.id = ?
		GROUP BY d.id
	`, demandColumns)

	dem, err := scanDemand(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get demand: %w", err)
	}
	return dem, nil
}

// Update updates an existing demand
func (r *DemandRepository) Update(ctx context.Context, dem *demand.Demand) error {
	query := `
		UPDATE demands
		SET project_id = ?, title = ?, description = ?, status = ?, priority = ?,
			estimated_hours = ?, modified_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		dem.ProjectID,
		dem.Title,
		dem.Description,
		dem.Status,
		dem.Priority,
		dem.EstimatedHours,
		dem.ModifiedAt,
		dem.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update demand: %w", err)
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

// Delete removes a demand; time entries cascade
func (r *DemandRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM demands WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete demand: %w", err)
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

// List returns demands matching the options, each with logged hours
func (r *DemandRepository) List(ctx context.Context, opts demand.ListOptions) ([]demand.Demand, error) {
	var conditions []string
	var args []any

	if opts.ProjectID != "" {
		conditions = append(conditions, "d.project_id = ?")
		args = append(args, opts.ProjectID)
	}
	if len(opts.Statuses) > 0 {
		placeholders := make([]string, len(opts.Statuses))
		for i, st := range opts.Statuses {
			placeholders[i] = "?"
			args = append(args, st)
		}
		conditions = append(conditions, fmt.Sprintf("d.status IN (%s)", strings.Join(placeholders, ", ")))
	}
	if len(opts.Priorities) > 0 {
		placeholders := make([]string, len(opts.Priorities))
		for i, p := range opts.Priorities {
			placeholders[i] = "?"
			args = append(args, p)
		}
		conditions = append(conditions, fmt.Sprintf("d.priority IN (%s)", strings.Join(placeholders, ", ")))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM demands d
		LEFT JOIN time_entries te ON te.demand_id = d.id
	`, demandColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " GROUP BY d.id ORDER BY d.created_at DESC, d.id"
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
		return nil, fmt.Errorf("failed to list demands: %w", err)
	}
	defer rows.Close()

	var demands []demand.Demand
	for rows.Next() {
		dem, err := scanDemand(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan demand: %w", err)
		}
		demands = append(demands, *dem)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating demand rows: %w", err)
	}
	return demands, nil
}

// CreateEntry creates a new time entry
func (r *DemandRepository) CreateEntry(ctx context.Context, entry *demand.TimeEntry) error {
	query := `
		INSERT INTO time_entries (id, demand_id, consultant_id, entry_date, hours, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.DemandID,
		entry.ConsultantID,
		entry.EntryDate,
		entry.Hours,
		entry.Description,
		entry.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create time entry: %w", err)
	}
	return nil
}

// GetEntry retrieves a time entry by ID
func (r *DemandRepository) GetEntry(ctx context.Context, id string) (*demand.TimeEntry, error) {
	query := `
		SELECT id, demand_id, consultant_id, entry_date, hours, description, created_at
		FROM time_entries
		WHERE id = ?
	`

	var entry demand.TimeEntry
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&entry.ID,
		&entry.DemandID,
		&entry.ConsultantID,
		&entry.EntryDate,
		&entry.Hours,
		&entry.Description,
		&entry.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get time entry: %w", err)
	}
	return &entry, nil
}

// DeleteEntry removes a time entry
func (r *DemandRepository) DeleteEntry(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM time_entries WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to delete time entry: %w", err)
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

// ListEntries returns time entries matching the options
func (r *DemandRepository) ListEntries(ctx context.Context, opts demand.EntryListOptions) ([]demand.TimeEntry, error) {
	query := `
		SELECT id, demand_id, consultant_id, entry_date, hours, description, created_at
		FROM time_entries
	`

	var conditions []string
	var args []any

	if opts.DemandID != "" {
		conditions = append(conditions, "demand_id = ?")
		args = append(args, opts.DemandID)
	}
	if opts.ConsultantID != "" {
		conditions = append(conditions, "consultant_id = ?")
		args = append(args, opts.ConsultantID)
	}
	if !opts.From.IsZero() {
		conditions = append(conditions, "entry_date >= ?")
		args = append(args, opts.From)
	}
	if !opts.To.IsZero() {
		conditions = append(conditions, "entry_date < ?")
		args = append(args, opts.To)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY entry_date DESC, id"
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
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	defer rows.Close()

	var entries []demand.TimeEntry
	for rows.Next() {
		var entry demand.TimeEntry
		err := rows.Scan(
			&entry.ID,
			&entry.DemandID,
			&entry.ConsultantID,
			&entry.EntryDate,
			&entry.Hours,
			&entry.Description,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time entry rows: %w", err)
	}
	return entries, nil
}

// TotalLoggedHours sums the hours logged against a demand
func (r *DemandRepository) TotalLoggedHours(ctx context.Context, demandID string) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(hours), 0) FROM time_entries WHERE demand_id = ?
	`, demandID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to total logged hours: %w", err)
	}
	return total, nil
}

func scanDemand(row rowScanner) (*demand.Demand, error) {
	var dem demand.Demand
	err := row.Scan(
		&dem.ID,
		&dem.ProjectID,
		&dem.Title,
		&dem.Description,
		&dem.Status,
		&dem.Priority,
		&dem.EstimatedHours,
		&dem.LoggedHours,
		&dem.CreatedAt,
		&dem.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}
	return &dem, nil
}
