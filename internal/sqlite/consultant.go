package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gestorhq/gestor/internal/domain/consultant"
	"github.com/gestorhq/gestor/internal/repository"
)

// ConsultantRepository implements consultant.Repository for SQLite
type ConsultantRepository struct {
	db *DB
}

// NewConsultantRepository creates a new ConsultantRepository
func NewConsultantRepository(db *DB) *ConsultantRepository {
	return &ConsultantRepository{db: db}
}

// Create creates a new consultant
func (r *ConsultantRepository) Create(ctx context.Context, cons *consultant.Consultant) error {
	query := `
		INSERT INTO consultants (id, name, email, hourly_rate, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		cons.ID,
		cons.Name,
		cons.Email,
		cons.HourlyRate,
		cons.Active,
		cons.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create consultant: %w", err)
	}
	return nil
}

// Get retrieves a consultant by ID
func (r *ConsultantRepository) Get(ctx context.Context, id string) (*consultant.Consultant, error) {
	query := `
		SELECT id, name, email, hourly_rate, active, created_at
		FROM consultants
		WHERE id = ?
	`

	var cons consultant.Consultant
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&cons.ID,
		&cons.Name,
		&cons.Email,
		&cons.HourlyRate,
		&cons.Active,
		&cons.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get consultant: %w", err)
	}
	return &cons, nil
}

// Update updates an existing consultant
func (r *ConsultantRepository) Update(ctx context.Context, cons *consultant.Consultant) error {
	query := `
		UPDATE consultants
		SET name = ?, email = ?, hourly_rate = ?, active = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		cons.Name,
		cons.Email,
		cons.HourlyRate,
		cons.Active,
		cons.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update consultant: %w", err)
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

// Delete removes a consultant
func (r *ConsultantRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM consultants WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to delete consultant: %w", err)
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

// List returns consultants matching the options
func (r *ConsultantRepository) List(ctx context.Context, opts consultant.ListOptions) ([]consultant.Consultant, error) {
	query := `
		SELECT id, name, email, hourly_rate, active, created_at
		FROM consultants
	`

	var args []any
	if opts.Active != nil {
		query += " WHERE active = ?"
		args = append(args, *opts.Active)
	}
	query += " ORDER BY name, id"
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
		return nil, fmt.Errorf("failed to list consultants: %w", err)
	}
	defer rows.Close()

	var consultants []consultant.Consultant
	for rows.Next() {
		var cons consultant.Consultant
		err := rows.Scan(
			&cons.ID,
			&cons.Name,
			&cons.Email,
			&cons.HourlyRate,
			&cons.Active,
			&cons.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan consultant: %w", err)
		}
		consultants = append(consultants, cons)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating consultant rows: %w", err)
	}
	return consultants, nil
}
