package channel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gestorhq/gestor/internal/repository"
)

var (
	// ErrChannelNotFound indicates the channel doesn't exist.
	ErrChannelNotFound = errors.New("channel not found")
	// ErrInvalidInput indicates invalid channel input.
	ErrInvalidInput = errors.New("invalid channel input")
	// ErrInvalidCycleDay indicates a cycle day outside 1-31.
	ErrInvalidCycleDay = errors.New("cycle day must be between 1 and 31")
)

// Repository provides persistence for channels.
type Repository interface {
	Create(ctx context.Context, ch *Channel) error
	Get(ctx context.Context, id string) (*Channel, error)
	Update(ctx context.Context, ch *Channel) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts ListOptions) ([]Channel, error)
}

// ListOptions provides filtering options for listing channels.
type ListOptions struct {
	Types  []Type
	Limit  int
	Offset int
}

// Service handles channel operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new channel service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines channel creation inputs.
type CreateRequest struct {
	ID           string
	Name         string
	Type         Type
	HourlyRate   float64
	TimesheetDay int
	InvoiceDay   int
	PaymentDay   int
}

// UpdateRequest defines partial channel updates.
type UpdateRequest struct {
	ID           string
	Name         *string
	Type         *Type
	HourlyRate   *float64
	TimesheetDay *int
	InvoiceDay   *int
	PaymentDay   *int
}

func validCycleDay(day int) bool {
	return day >= 1 && day <= 31
}

// ValidateCreateInput validates fields required to create a channel.
func ValidateCreateInput(req CreateRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return ErrInvalidInput
	}
	if !req.Type.Valid() {
		return ErrInvalidInput
	}
	if req.HourlyRate < 0 {
		return ErrInvalidInput
	}
	if !validCycleDay(req.TimesheetDay) || !validCycleDay(req.InvoiceDay) || !validCycleDay(req.PaymentDay) {
		return ErrInvalidCycleDay
	}
	return nil
}

// Create creates a new channel.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Channel, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	id := req.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	ch := &Channel{
		ID:           id,
		Name:         req.Name,
		Type:         req.Type,
		HourlyRate:   req.HourlyRate,
		TimesheetDay: req.TimesheetDay,
		InvoiceDay:   req.InvoiceDay,
		PaymentDay:   req.PaymentDay,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, ch); err != nil {
		return nil, fmt.Errorf("creating channel: %w", err)
	}

	return ch, nil
}

// Get fetches a channel by ID.
func (s *Service) Get(ctx context.Context, id string) (*Channel, error) {
	ch, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, fmt.Errorf("getting channel: %w", err)
	}
	return ch, nil
}

// Update modifies a channel.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Channel, error) {
	if strings.TrimSpace(req.ID) == "" {
		return nil, ErrInvalidInput
	}

	current, err := s.repo.Get(ctx, req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, fmt.Errorf("loading channel: %w", err)
	}

	updated := *current
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrInvalidInput
		}
		updated.Name = *req.Name
	}
	if req.Type != nil {
		if !req.Type.Valid() {
			return nil, ErrInvalidInput
		}
		updated.Type = *req.Type
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate < 0 {
			return nil, ErrInvalidInput
		}
		updated.HourlyRate = *req.HourlyRate
	}
	if req.TimesheetDay != nil {
		if !validCycleDay(*req.TimesheetDay) {
			return nil, ErrInvalidCycleDay
		}
		updated.TimesheetDay = *req.TimesheetDay
	}
	if req.InvoiceDay != nil {
		if !validCycleDay(*req.InvoiceDay) {
			return nil, ErrInvalidCycleDay
		}
		updated.InvoiceDay = *req.InvoiceDay
	}
	if req.PaymentDay != nil {
		if !validCycleDay(*req.PaymentDay) {
			return nil, ErrInvalidCycleDay
		}
		updated.PaymentDay = *req.PaymentDay
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("updating channel: %w", err)
	}

	return &updated, nil
}

// Delete removes a channel.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrChannelNotFound
		}
		return fmt.Errorf("deleting channel: %w", err)
	}
	return nil
}

// List returns channels matching the options.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Channel, error) {
	for _, t := range opts.Types {
		if !t.Valid() {
			return nil, ErrInvalidInput
		}
	}
	return s.repo.List(ctx, opts)
}
