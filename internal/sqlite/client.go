package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gestorhq/gestor/internal/domain/client"
	"github.com/gestorhq/gestor/internal/repository"
)

// ClientRepository implements client.Repository for SQLite
type ClientRepository struct {
	db *DB
}

// NewClientRepository creates a new ClientRepository
func NewClientRepository(db *DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// Create creates a new client
func (r *ClientRepository) Create(ctx context.Context, cl *client.Client) error {
	query := `
		INSERT INTO clients (id, company, contact_name, email, phone, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		cl.ID,
		cl.Company,
		cl.ContactName,
		cl.Email,
		cl.Phone,
		cl.Active,
		cl.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

// Get retrieves a client by ID
func (r *ClientRepository) Get(ctx context.Context, id string) (*client.Client, error) {
	query := `
		SELECT id, company, contact_name, email, phone, active, created_at
		FROM clients
		WHERE id = ?
	`

	var cl client.Client
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&cl.ID,
		&cl.Company,
		&cl.ContactName,
		&cl.Email,
		&cl.Phone,
		&cl.Active,
		&cl.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &cl, nil
}

// Update updates an existing client
func (r *ClientRepository) Update(ctx context.Context, cl *client.Client) error {
	query := `
		UPDATE clients
		SET company = ?, contact_name = ?, email = ?, phone = ?, active = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		cl.Company,
		cl.ContactName,
		cl.Email,
		cl.Phone,
		cl.Active,
		cl.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
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

// Delete removes a client
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to delete client: %w", err)
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

// List returns clients matching the options
func (r *ClientRepository) List(ctx context.Context, opts client.ListOptions) ([]client.Client, error) {
	query := `
		SELECT id, company, contact_name, email, phone, active, created_at
		FROM clients
	`

	var args []any
	if opts.Active != nil {
		query += " WHERE active = ?"
		args = append(args, *opts.Active)
	}
	query += " ORDER BY company, id"
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
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []client.Client
	for rows.Next() {
		var cl client.Client
		err := rows.Scan(
			&cl.ID,
			&cl.Company,
			&cl.ContactName,
			&cl.Email,
			&cl.Phone,
			&cl.Active,
			&cl.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, cl)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", err)
	}
	return clients, nil
}
