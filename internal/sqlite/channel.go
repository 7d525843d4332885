package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gestorhq/gestor/internal/domain/channel"
	"github.com/gestorhq/gestor/internal/repository"
)

// ChannelRepository implements channel.Repository for SQLite
type ChannelRepository struct {
	db *DB
}

// NewChannelRepository creates a new ChannelRepository
func NewChannelRepository(db *DB) *ChannelRepository {
	return &ChannelRepository{db: db}
}

// Create creates a new channel
func (r *ChannelRepository) Create(ctx context.Context, ch *channel.Channel) error {
	query := `
		INSERT INTO channels (id, name, type, hourly_rate, timesheet_day, invoice_day, payment_day, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		ch.ID,
		ch.Name,
		ch.Type,
		ch.HourlyRate,
		ch.TimesheetDay,
		ch.InvoiceDay,
		ch.PaymentDay,
		ch.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create channel: %w", err)
	}
	return nil
}

// Get retrieves a channel by ID
func (r *ChannelRepository) Get(ctx context.Context, id string) (*channel.Channel, error) {
	query := `
		SELECT id, name, type, hourly_rate, timesheet_day, invoice_day, payment_day, created_at
		FROM channels
		WHERE id = ?
	`

	var ch channel.Channel
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ch.ID,
		&ch.Name,
		&ch.Type,
		&ch.HourlyRate,
		&ch.TimesheetDay,
		&ch.InvoiceDay,
		&ch.PaymentDay,
		&ch.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}
	return &ch, nil
}

// Update updates an existing channel
func (r *ChannelRepository) Update(ctx context.Context, ch *channel.Channel) error {
	query := `
		UPDATE channels
		SET name = ?, type = ?, hourly_rate = ?, timesheet_day = ?, invoice_day = ?, payment_day = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		ch.Name,
		ch.Type,
		ch.HourlyRate,
		ch.TimesheetDay,
		ch.InvoiceDay,
		ch.PaymentDay,
		ch.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update channel: %w", err)
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

// Delete removes a channel
func (r *ChannelRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM channels WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to delete channel: %w", err)
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

// List returns channels matching the options
func (r *ChannelRepository) List(ctx context.Context, opts channel.ListOptions) ([]channel.Channel, error) {
	query := `
		SELECT id, name, type, hourly_rate, timesheet_day, invoice_day, payment_day, created_at
		FROM channels
	`

	var args []any
	if len(opts.Types) > 0 {
		placeholders := make([]string, len(opts.Types))
		for i, t := range opts.Types {
			placeholders[i] = "?"
			args = append(args, t)
		}
		query += fmt.Sprintf(" WHERE type IN (%s)", strings.Join(placeholders, ", "))
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
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	defer rows.Close()

	var channels []channel.Channel
	for rows.Next() {
		var ch channel.Channel
		err := rows.Scan(
			&ch.ID,
			&ch.Name,
			&ch.Type,
			&ch.HourlyRate,
			&ch.TimesheetDay,
			&ch.InvoiceDay,
			&ch.PaymentDay,
			&ch.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan channel: %w", err)
		}
		channels = append(channels, ch)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating channel rows: %w", err)
	}
	return channels, nil
}
