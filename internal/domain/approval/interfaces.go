package approval

import (
	"context"
	"time"
)

// Repository provides persistence for approvals.
type Repository interface {
	Create(ctx context.Context, appr *Approval) error
	Get(ctx context.Context, id string) (*Approval, error)
	List(ctx context.Context, opts ListOptions) ([]Approval, error)

	// TransitionBulk moves every listed approval from fromStatus to
	// toStatus in one transaction. If any approval is missing or not in
	// fromStatus, the whole batch rolls back.
	TransitionBulk(ctx context.Context, ids []string, fromStatus, toStatus Status, reason *string, reviewedBy string, reviewedAt time.Time) error
}

// ListOptions provides filtering options for listing approvals.
type ListOptions struct {
	Statuses     []Status
	ConsultantID string
	Limit        int
	Offset       int
}
