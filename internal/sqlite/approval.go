package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gestorhq/gestor/internal/domain/approval"
	"github.com/gestorhq/gestor/internal/repository"
)

// ApprovalRepository implements approval.Repository for SQLite
type ApprovalRepository struct {
	db *DB
}

// NewApprovalRepository creates a new ApprovalRepository
func NewApprovalRepository(db *DB) *ApprovalRepository {
	return &ApprovalRepository{db: db}
}

// Create creates a new approval
func (r *ApprovalRepository) Create(ctx context.Context, appr *approval.Approval) error {
	query := `
		INSERT INTO approvals (id, time_entry_id, consultant_id, hours, amount, status, reason, reviewed_by, reviewed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		appr.ID,
		appr.TimeEntryID,
		appr.ConsultantID,
		appr.Hours,
		appr.Amount,
		appr.Status,
		appr.Reason,
		appr.ReviewedBy,
		appr.ReviewedAt,
		appr.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create approval: %w", err)
	}
	return nil
}

// Get retrieves an approval by ID
func (r *ApprovalRepository) Get(ctx context.Context, id string) (*approval.Approval, error) {
	query := `
		SELECT id, time_entry_id, consultant_id, hours, amount, status, reason, reviewed_by, reviewed_at, created_at
		FROM approvals
		WHERE id = ?
	`

	appr, err := scanApproval(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get approval: %w", err)
	}
	return appr, nil
}

// List returns approvals matching the options
func (r *ApprovalRepository) List(ctx context.Context, opts approval.ListOptions) ([]approval.Approval, error) {
	query := `
		SELECT id, time_entry_id, consultant_id, hours, amount, status, reason, reviewed_by, reviewed_at, created_at
		FROM approvals
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
	if opts.ConsultantID != "" {
		conditions = append(conditions, "consultant_id = ?")
		args = append(args, opts.ConsultantID)
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
		return nil, fmt.Errorf("failed to list approvals: %w", err)
	}
	defer rows.Close()

	var approvals []approval.Approval
	for rows.Next() {
		appr, err := scanApproval(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval: %w", err)
		}
		approvals = append(approvals, *appr)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating approval rows: %w", err)
	}
	return approvals, nil
}

// TransitionBulk moves every listed approval from fromStatus to toStatus in
// one transaction. Any approval missing or not in fromStatus rolls back the
// whole batch with repository.ErrConflict.
func (r *ApprovalRepository) TransitionBulk(ctx context.Context, ids []string, fromStatus, toStatus approval.Status, reason *string, reviewedBy string, reviewedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	placeholders := make([]string, len(ids))
	args := []any{toStatus}
	if reason != nil {
		args = append(args, *reason)
	} else {
		args = append(args, nil)
	}
	args = append(args, reviewedBy, reviewedAt)
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}
	args = append(args, fromStatus)

	query := fmt.Sprintf(`
		UPDATE approvals
		SET status = ?, reason = ?, reviewed_by = ?, reviewed_at = ?
		WHERE id IN (%s) AND status = ?
	`, strings.Join(placeholders, ", "))

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to transition approvals: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected != int64(len(ids)) {
		return repository.ErrConflict
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func scanApproval(row rowScanner) (*approval.Approval, error) {
	var appr approval.Approval
	var reason sql.NullString
	var reviewedBy sql.NullString
	var reviewedAt sql.NullTime

	err := row.Scan(
		&appr.ID,
		&appr.TimeEntryID,
		&appr.ConsultantID,
		&appr.Hours,
		&appr.Amount,
		&appr.Status,
		&reason,
		&reviewedBy,
		&reviewedAt,
		&appr.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	appr.Reason = reason.String
	if reviewedBy.Valid {
		appr.ReviewedBy = &reviewedBy.String
	}
	if reviewedAt.Valid {
		t := reviewedAt.Time
		appr.ReviewedAt = &t
	}
	return &appr, nil
}
