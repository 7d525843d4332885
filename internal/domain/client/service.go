package client

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
	// ErrClientNotFound indicates the client doesn't exist.
	ErrClientNotFound = errors.New("client not found")
	// ErrInvalidInput indicates invalid client input.
	ErrInvalidInput = errors.New("invalid client input")
)

// Repository provides persistence for clients.
type Repository interface {
	Create(ctx context.Context, cl *Client) error
	Get(ctx context.Context, id string) (*Client, error)
	Update(ctx context.Context, cl *Client) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts ListOptions) ([]Client, error)
}

// ListOptions provides filtering options for listing clients.
type ListOptions struct {
	Active *bool
	Limit  int
	Offset int
}

// Service handles client operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new client service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines client creation inputs.
type CreateRequest struct {
	ID          string
	Company     string
	ContactName string
	Email       string
	Phone       string
}

// UpdateRequest defines partial client updates.
type UpdateRequest struct {
	ID          string
	Company     *string
	ContactName *string
	Email       *string
	Phone       *string
	Active      *bool
}

// Create creates a new client, active by default.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Client, error) {
	if strings.TrimSpace(req.Company) == "" {
		return nil, ErrInvalidInput
	}

	id := req.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	cl := &Client{
		ID:          id,
		Company:     req.Company,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Active:      true,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, cl); err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return cl, nil
}

// Get fetches a client by ID.
func (s *Service) Get(ctx context.Context, id string) (*Client, error) {
	cl, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("getting client: %w", err)
	}
	return cl, nil
}

// Update modifies a client.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Client, error) {
	if strings.TrimSpace(req.ID) == "" {
		return nil, ErrInvalidInput
	}

	current, err := s.repo.Get(ctx, req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("loading client: %w", err)
	}

	updated := *current
	if req.Company != nil {
		if strings.TrimSpace(*req.Company) == "" {
			return nil, ErrInvalidInput
		}
		updated.Company = *req.Company
	}
	if req.ContactName != nil {
		updated.ContactName = *req.ContactName
	}
	if req.Email != nil {
		updated.Email = *req.Email
	}
	if req.Phone != nil {
		updated.Phone = *req.Phone
	}
	if req.Active != nil {
		updated.Active = *req.Active
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("updating client: %w", err)
	}

	return &updated, nil
}

// Delete removes a client.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("deleting client: %w", err)
	}
	return nil
}

// List returns clients matching the options.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Client, error) {
	return s.repo.List(ctx, opts)
}
