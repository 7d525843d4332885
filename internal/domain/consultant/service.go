package consultant

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

// Repository provides persistence for consultants.
type Repository interface {
	Create(ctx context.Context, cons *Consultant) error
	Get(ctx context.Context, id string) (*Consultant, error)
	Update(ctx context.Context, cons *Consultant) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts ListOptions) ([]Consultant, error)
}

// ListOptions provides filtering options for listing consultants.
type ListOptions struct {
	Active *bool
	Limit  int
	Offset int
}

// Service handles consultant operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new consultant service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines consultant creation inputs.
type CreateRequest struct {
	ID         string
	Name       string
	Email      string
	HourlyRate float64
}

// UpdateRequest defines partial consultant updates.
type UpdateRequest struct {
	ID         string
	Name       *string
	Email      *string
	HourlyRate *float64
	Active     *bool
}

// Create creates a new consultant, active by default.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Consultant, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}
	if req.HourlyRate < 0 {
		return nil, ErrInvalidInput
	}

	id := req.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	cons := &Consultant{
		ID:         id,
		Name:       req.Name,
		Email:      req.Email,
		HourlyRate: req.HourlyRate,
		Active:     true,
		CreatedAt:  time.Now(),
	}

	if err := s.repo.Create(ctx, cons); err != nil {
		return nil, fmt.Errorf("creating consultant: %w", err)
	}

	return cons, nil
}

// Get fetches a consultant by ID.
func (s *Service) Get(ctx context.Context, id string) (*Consultant, error) {
	cons, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrConsultantNotFound
		}
		return nil, fmt.Errorf("getting consultant: %w", err)
	}
	return cons, nil
}

// Update modifies a consultant.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Consultant, error) {
	if strings.TrimSpace(req.ID) == "" {
		return nil, ErrInvalidInput
	}

	current, err := s.repo.Get(ctx, req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrConsultantNotFound
		}
		return nil, fmt.Errorf("loading consultant: %w", err)
	}

	updated := *current
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrInvalidInput
		}
		updated.Name = *req.Name
	}
	if req.Email != nil {
		updated.Email = *req.Email
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate < 0 {
			return nil, ErrInvalidInput
		}
		updated.HourlyRate = *req.HourlyRate
	}
	if req.Active != nil {
		updated.Active = *req.Active
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("updating consultant: %w", err)
	}

	return &updated, nil
}

// Delete removes a consultant.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrConsultantNotFound
		}
		return fmt.Errorf("deleting consultant: %w", err)
	}
	return nil
}

// List returns consultants matching the options.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Consultant, error) {
	return s.repo.List(ctx, opts)
}
