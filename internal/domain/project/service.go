package project

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

// Service handles project operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	ID             string
	ClientID       string
	ChannelID      string
	Name           string
	Description    string
	Status         Status
	ChannelRate    float64
	ConsultantRate float64
	EstimatedHours float64
	StartDate      time.Time
	EndDate        time.Time
	Assignments    []Assignment
}

// UpdateRequest defines partial project updates. Nil fields are left as-is.
type UpdateRequest struct {
	ID             string
	Name           *string
	Description    *string
	Status         *Status
	ChannelRate    *float64
	ConsultantRate *float64
	EstimatedHours *float64
	StartDate      *time.Time
	EndDate        *time.Time
	Assignments    []Assignment
}

// ValidateCreateInput validates fields required to create a project.
func ValidateCreateInput(req CreateRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return ErrInvalidInput
	}
	if req.Status != "" && !req.Status.Valid() {
		return ErrInvalidStatus
	}
	if req.ChannelRate < 0 || req.ConsultantRate < 0 || req.EstimatedHours < 0 {
		return ErrInvalidInput
	}
	for _, a := range req.Assignments {
		if strings.TrimSpace(a.ConsultantID) == "" {
			return ErrInvalidInput
		}
		if a.HourlyRate < 0 || a.HoursLogged < 0 {
			return ErrInvalidInput
		}
	}
	return nil
}

// Create creates a new project.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	id := req.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	status := req.Status
	if status == "" {
		status = StatusPlanning
	}

	now := time.Now()
	proj := &Project{
		ID:             id,
		ClientID:       req.ClientID,
		ChannelID:      req.ChannelID,
		Name:           req.Name,
		Description:    req.Description,
		Status:         status,
		ChannelRate:    req.ChannelRate,
		ConsultantRate: req.ConsultantRate,
		EstimatedHours: req.EstimatedHours,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Assignments:    req.Assignments,
		CreatedAt:      now,
		ModifiedAt:     now,
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	return proj, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// Update modifies a project in place.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Project, error) {
	if strings.TrimSpace(req.ID) == "" {
		return nil, ErrInvalidInput
	}

	current, err := s.repo.Get(ctx, req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}

	updated := *current
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrInvalidInput
		}
		updated.Name = *req.Name
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		updated.Status = *req.Status
	}
	if req.ChannelRate != nil {
		if *req.ChannelRate < 0 {
			return nil, ErrInvalidInput
		}
		updated.ChannelRate = *req.ChannelRate
	}
	if req.ConsultantRate != nil {
		if *req.ConsultantRate < 0 {
			return nil, ErrInvalidInput
		}
		updated.ConsultantRate = *req.ConsultantRate
	}
	if req.EstimatedHours != nil {
		if *req.EstimatedHours < 0 {
			return nil, ErrInvalidInput
		}
		updated.EstimatedHours = *req.EstimatedHours
	}
	if req.StartDate != nil {
		updated.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		updated.EndDate = *req.EndDate
	}
	if req.Assignments != nil {
		for _, a := range req.Assignments {
			if strings.TrimSpace(a.ConsultantID) == "" || a.HourlyRate < 0 || a.HoursLogged < 0 {
				return nil, ErrInvalidInput
			}
		}
		updated.Assignments = req.Assignments
	}
	updated.ModifiedAt = time.Now()

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}

	return &updated, nil
}

// Delete removes a project.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

// List returns projects matching the options.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Project, error) {
	for _, st := range opts.Statuses {
		if !st.Valid() {
			return nil, ErrInvalidStatus
		}
	}
	return s.repo.List(ctx, opts)
}
