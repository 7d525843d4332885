package user

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gestorhq/gestor/internal/repository"
)

var (
	// ErrUserNotFound indicates the user doesn't exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidInput indicates invalid user input.
	ErrInvalidInput = errors.New("invalid user input")
	// ErrInvalidRole indicates an unknown role value.
	ErrInvalidRole = errors.New("invalid role")
)

// Repository provides persistence for users and their API keys.
type Repository interface {
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, id string) (*User, error)
	GetByKeyHash(ctx context.Context, keyHash string) (*User, error)
	Update(ctx context.Context, u *User) error
	List(ctx context.Context, opts ListOptions) ([]User, error)
	AddKey(ctx context.Context, userID, keyHash string) error
}

// ListOptions provides filtering options for listing users.
type ListOptions struct {
	Roles  []Role
	Active *bool
	Limit  int
	Offset int
}

// Service handles user and API key operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines user creation inputs.
type CreateRequest struct {
	ID    string
	Name  string
	Email string
	Role  Role
}

// UpdateRequest defines partial user updates.
type UpdateRequest struct {
	ID     string
	Name   *string
	Email  *string
	Role   *Role
	Active *bool
}

// Create creates a new active user.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*User, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, ErrInvalidInput
	}

	role := req.Role
	if role == "" {
		role = RoleView
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	id := req.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	u := &User{
		ID:        id,
		Name:      req.Name,
		Email:     req.Email,
		Role:      role,
		Active:    true,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return u, nil
}

// Get fetches a user by ID.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// Update modifies a user.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*User, error) {
	if strings.TrimSpace(req.ID) == "" {
		return nil, ErrInvalidInput
	}

	current, err := s.repo.Get(ctx, req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("loading user: %w", err)
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
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, ErrInvalidRole
		}
		updated.Role = *req.Role
	}
	if req.Active != nil {
		updated.Active = *req.Active
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	return &updated, nil
}

// List returns users matching the options.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]User, error) {
	for _, r := range opts.Roles {
		if !r.Valid() {
			return nil, ErrInvalidRole
		}
	}
	return s.repo.List(ctx, opts)
}

// CreateAPIKey mints a bearer key for a user and stores only its hash. The
// plaintext key is returned exactly once.
func (s *Service) CreateAPIKey(ctx context.Context, userID string) (string, error) {
	if _, err := s.Get(ctx, userID); err != nil {
		return "", err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generating key: %w", err)
	}
	key := hex.EncodeToString(raw)

	if err := s.repo.AddKey(ctx, userID, HashKey(key)); err != nil {
		return "", fmt.Errorf("storing key: %w", err)
	}

	return key, nil
}

// ResolveKey returns the active user owning the presented bearer key.
func (s *Service) ResolveKey(ctx context.Context, key string) (*User, error) {
	u, err := s.repo.GetByKeyHash(ctx, HashKey(key))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("resolving key: %w", err)
	}
	if !u.Active {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// HashKey hashes an API key for storage and lookup.
func HashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
