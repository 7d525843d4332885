package demand

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gestorhq/gestor/internal/domain/audit"
	"github.com/gestorhq/gestor/internal/domain/project"
	"github.com/gestorhq/gestor/internal/repository"
)

// Service handles demand and time entry business logic.
type Service struct {
	demands  Repository
	projects project.Repository
	audits   audit.Repository
	logger   *slog.Logger
}

// NewService creates a new demand service.
func NewService(demands Repository, projects project.Repository, audits audit.Repository, logger *slog.Logger) *Service {
	return &Service{
		demands:  demands,
		projects: projects,
		audits:   audits,
		logger:   logger,
	}
}

// CreateRequest describes a demand creation request.
type CreateRequest struct {
	ID             string
	ProjectID      string
	Title          string
	Description    string
	Status         Status
	Priority       Priority
	EstimatedHours float64
}

// UpdateRequest describes a partial demand update.
type UpdateRequest struct {
	ID             string
	Title          *string
	Description    *string
	Status         *Status
	Priority       *Priority
	EstimatedHours *float64
}

// LogTimeRequest describes a logged-hours submission.
type LogTimeRequest struct {
	DemandID     string
	ConsultantID string
	EntryDate    time.Time
	Hours        float64
	Description  string
}

// ValidateCreateInput validates fields required to create a demand.
func ValidateCreateInput(req CreateRequest) error {
	if strings.TrimSpace(req.ProjectID) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(req.Title) == "" {
		return ErrInvalidInput
	}
	if req.Status != "" && !req.Status.Valid() {
		return ErrInvalidStatus
	}
	if req.Priority != "" && !req.Priority.Valid() {
		return ErrInvalidPriority
	}
	if req.EstimatedHours < 0 {
		return ErrInvalidInput
	}
	return nil
}

// Create creates a new demand.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Demand, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	id := req.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	status := req.Status
	if status == "" {
		status = StatusPending
	}
	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	now := time.Now()
	dem := &Demand{
		ID:             id,
		ProjectID:      req.ProjectID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         status,
		Priority:       priority,
		EstimatedHours: req.EstimatedHours,
		CreatedAt:      now,
		ModifiedAt:     now,
	}

	if err := s.demands.Create(ctx, dem); err != nil {
		return nil, fmt.Errorf("creating demand: %w", err)
	}

	if s.audits != nil {
		_ = s.audits.Log(ctx, &audit.Entry{
			EntityID:  &dem.ID,
			EventType: audit.TypeDemandCreated,
			Summary:   fmt.Sprintf("created demand %s", dem.ID),
			CreatedAt: now,
		})
	}

	return dem, nil
}

// Get returns a demand by ID.
func (s *Service) Get(ctx context.Context, id string) (*Demand, error) {
	dem, err := s.demands.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDemandNotFound
		}
		return nil, fmt.Errorf("getting demand: %w", err)
	}
	return dem, nil
}

// Update modifies a demand.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Demand, error) {
	if strings.TrimSpace(req.ID) == "" {
		return nil, ErrInvalidInput
	}

	current, err := s.demands.Get(ctx, req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDemandNotFound
		}
		return nil, fmt.Errorf("loading demand: %w", err)
	}

	updated := *current
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrInvalidInput
		}
		updated.Title = *req.Title
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
	if req.Priority != nil {
		if !req.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		updated.Priority = *req.Priority
	}
	if req.EstimatedHours != nil {
		if *req.EstimatedHours < 0 {
			return nil, ErrInvalidInput
		}
		updated.EstimatedHours = *req.EstimatedHours
	}
	updated.ModifiedAt = time.Now()

	if err := s.demands.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("updating demand: %w", err)
	}

	return &updated, nil
}

// Delete removes a demand.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.demands.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDemandNotFound
		}
		return fmt.Errorf("deleting demand: %w", err)
	}
	return nil
}

// List returns demands matching the options. LoggedHours on each demand is
// the sum of its time entries at read time.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Demand, error) {
	for _, st := range opts.Statuses {
		if !st.Valid() {
			return nil, ErrInvalidStatus
		}
	}
	for _, p := range opts.Priorities {
		if !p.Valid() {
			return nil, ErrInvalidPriority
		}
	}
	return s.demands.List(ctx, opts)
}

// LogTime records hours against a demand and rolls them up into the owning
// project's worked hours and the consultant's assignment.
func (s *Service) LogTime(ctx context.Context, req LogTimeRequest) (*TimeEntry, error) {
	if strings.TrimSpace(req.DemandID) == "" || strings.TrimSpace(req.ConsultantID) == "" {
		return nil, ErrInvalidInput
	}
	if req.Hours <= 0 {
		return nil, ErrInvalidInput
	}

	dem, err := s.demands.Get(ctx, req.DemandID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDemandNotFound
		}
		return nil, fmt.Errorf("loading demand: %w", err)
	}

	entryDate := req.EntryDate
	if entryDate.IsZero() {
		entryDate = time.Now()
	}

	entry := &TimeEntry{
		ID:           uuid.NewString(),
		DemandID:     dem.ID,
		ConsultantID: req.ConsultantID,
		EntryDate:    entryDate,
		Hours:        req.Hours,
		Description:  req.Description,
		CreatedAt:    time.Now(),
	}

	if err := s.demands.CreateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("creating time entry: %w", err)
	}

	if err := s.projects.AddWorkedHours(ctx, dem.ProjectID, req.ConsultantID, req.Hours); err != nil {
		return nil, fmt.Errorf("rolling up worked hours: %w", err)
	}

	if s.audits != nil {
		_ = s.audits.Log(ctx, &audit.Entry{
			EntityID:  &entry.ID,
			ActorID:   &entry.ConsultantID,
			EventType: audit.TypeTimeLogged,
			Summary:   fmt.Sprintf("logged %.2f hours on demand %s", entry.Hours, dem.ID),
			CreatedAt: entry.CreatedAt,
		})
	}

	return entry, nil
}

// DeleteEntry removes a time entry and reverses its worked-hours rollup.
func (s *Service) DeleteEntry(ctx context.Context, id string) error {
	entry, err := s.demands.GetEntry(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("loading time entry: %w", err)
	}

	dem, err := s.demands.Get(ctx, entry.DemandID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("loading demand: %w", err)
	}

	if err := s.demands.DeleteEntry(ctx, id); err != nil {
		return fmt.Errorf("deleting time entry: %w", err)
	}

	if dem != nil {
		if err := s.projects.AddWorkedHours(ctx, dem.ProjectID, entry.ConsultantID, -entry.Hours); err != nil {
			return fmt.Errorf("reversing worked hours: %w", err)
		}
	}

	return nil
}

// Entries lists time entries matching the options.
func (s *Service) Entries(ctx context.Context, opts EntryListOptions) ([]TimeEntry, error) {
	return s.demands.ListEntries(ctx, opts)
}

// TotalLoggedHours sums the hours logged against a demand.
func (s *Service) TotalLoggedHours(ctx context.Context, demandID string) (float64, error) {
	return s.demands.TotalLoggedHours(ctx, demandID)
}
