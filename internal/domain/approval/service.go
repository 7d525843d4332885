package approval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gestorhq/gestor/internal/domain/audit"
	"github.com/gestorhq/gestor/internal/domain/consultant"
	"github.com/gestorhq/gestor/internal/domain/demand"
	"github.com/gestorhq/gestor/internal/repository"
)

// Service handles approval business logic.
type Service struct {
	approvals   Repository
	entries     demand.Repository
	consultants consultant.Repository
	audits      audit.Repository
	logger      *slog.Logger
}

// NewService creates a new approval service.
func NewService(
	approvals Repository,
	entries demand.Repository,
	consultants consultant.Repository,
	audits audit.Repository,
	logger *slog.Logger,
) *Service {
	return &Service{
		approvals:   approvals,
		entries:     entries,
		consultants: consultants,
		audits:      audits,
		logger:      logger,
	}
}

// ReviewRequest describes a bulk approve or reject action.
type ReviewRequest struct {
	IDs        []string
	Approve    bool
	Reason     *string
	ReviewerID string
}

// Submit places a time entry into financial review, pricing it at the
// consultant's current hourly rate.
func (s *Service) Submit(ctx context.Context, timeEntryID string) (*Approval, error) {
	if strings.TrimSpace(timeEntryID) == "" {
		return nil, ErrInvalidInput
	}

	entry, err := s.entries.GetEntry(ctx, timeEntryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, demand.ErrEntryNotFound
		}
		return nil, fmt.Errorf("loading time entry: %w", err)
	}

	cons, err := s.consultants.Get(ctx, entry.ConsultantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, consultant.ErrConsultantNotFound
		}
		return nil, fmt.Errorf("loading consultant: %w", err)
	}

	appr := &Approval{
		ID:           uuid.NewString(),
		TimeEntryID:  entry.ID,
		ConsultantID: entry.ConsultantID,
		Hours:        entry.Hours,
		Amount:       entry.Hours * cons.HourlyRate,
		Status:       StatusPending,
		CreatedAt:    time.Now(),
	}

	if err := s.approvals.Create(ctx, appr); err != nil {
		return nil, fmt.Errorf("creating approval: %w", err)
	}

	if s.audits != nil {
		_ = s.audits.Log(ctx, &audit.Entry{
			EntityID:  &appr.ID,
			ActorID:   &appr.ConsultantID,
			EventType: audit.TypeApprovalSubmitted,
			Summary:   fmt.Sprintf("submitted %.2f hours for approval", appr.Hours),
			CreatedAt: appr.CreatedAt,
		})
	}

	return appr, nil
}

// BulkReview approves or rejects a set of pending approvals as one atomic
// action: every entry transitions, or none do.
func (s *Service) BulkReview(ctx context.Context, req ReviewRequest) error {
	if len(req.IDs) == 0 || strings.TrimSpace(req.ReviewerID) == "" {
		return ErrInvalidInput
	}

	toStatus := StatusApproved
	if !req.Approve {
		toStatus = StatusRejected
	}
	if err := ValidateTransition(StatusPending, toStatus, req.Reason); err != nil {
		return err
	}

	now := time.Now()
	if err := s.approvals.TransitionBulk(ctx, req.IDs, StatusPending, toStatus, req.Reason, req.ReviewerID, now); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return ErrBulkConflict
		}
		return fmt.Errorf("reviewing approvals: %w", err)
	}

	if s.audits != nil {
		_ = s.audits.Log(ctx, &audit.Entry{
			ActorID:   &req.ReviewerID,
			EventType: audit.TypeApprovalReviewed,
			Summary:   fmt.Sprintf("%s %d approvals", toStatus, len(req.IDs)),
			CreatedAt: now,
		})
	}

	return nil
}

// MarkPaid moves a set of approved entries to paid, atomically.
func (s *Service) MarkPaid(ctx context.Context, ids []string, reviewerID string) error {
	if len(ids) == 0 || strings.TrimSpace(reviewerID) == "" {
		return ErrInvalidInput
	}

	now := time.Now()
	if err := s.approvals.TransitionBulk(ctx, ids, StatusApproved, StatusPaid, nil, reviewerID, now); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return ErrBulkConflict
		}
		return fmt.Errorf("marking approvals paid: %w", err)
	}

	if s.audits != nil {
		_ = s.audits.Log(ctx, &audit.Entry{
			ActorID:   &reviewerID,
			EventType: audit.TypeApprovalPaid,
			Summary:   fmt.Sprintf("marked %d approvals paid", len(ids)),
			CreatedAt: now,
		})
	}

	return nil
}

// Get returns an approval by ID.
func (s *Service) Get(ctx context.Context, id string) (*Approval, error) {
	appr, err := s.approvals.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrApprovalNotFound
		}
		return nil, fmt.Errorf("getting approval: %w", err)
	}
	return appr, nil
}

// List returns approvals matching the options.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Approval, error) {
	for _, st := range opts.Statuses {
		if !st.Valid() {
			return nil, ErrInvalidInput
		}
	}
	return s.approvals.List(ctx, opts)
}
