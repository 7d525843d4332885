package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/gestorhq/gestor/internal/domain/approval"
	"github.com/gestorhq/gestor/internal/domain/audit"
	"github.com/gestorhq/gestor/internal/domain/channel"
	"github.com/gestorhq/gestor/internal/domain/client"
	"github.com/gestorhq/gestor/internal/domain/consultant"
	"github.com/gestorhq/gestor/internal/domain/demand"
	"github.com/gestorhq/gestor/internal/domain/project"
	"github.com/gestorhq/gestor/internal/domain/user"
)

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProjectRepository) List(ctx context.Context, opts project.ListOptions) ([]project.Project, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) AddWorkedHours(ctx context.Context, projectID, consultantID string, hours float64) error {
	args := m.Called(ctx, projectID, consultantID, hours)
	return args.Error(0)
}

// ConsultantRepository is a mock for consultant.Repository.
type ConsultantRepository struct {
	mock.Mock
}

func (m *ConsultantRepository) Create(ctx context.Context, cons *consultant.Consultant) error {
	args := m.Called(ctx, cons)
	return args.Error(0)
}

func (m *ConsultantRepository) Get(ctx context.Context, id string) (*consultant.Consultant, error) {
	args := m.Called(ctx, id)
	if cons, ok := args.Get(0).(*consultant.Consultant); ok {
		return cons, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ConsultantRepository) Update(ctx context.Context, cons *consultant.Consultant) error {
	args := m.Called(ctx, cons)
	return args.Error(0)
}

func (m *ConsultantRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ConsultantRepository) List(ctx context.Context, opts consultant.ListOptions) ([]consultant.Consultant, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]consultant.Consultant); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ChannelRepository is a mock for channel.Repository.
type ChannelRepository struct {
	mock.Mock
}

func (m *ChannelRepository) Create(ctx context.Context, ch *channel.Channel) error {
	args := m.Called(ctx, ch)
	return args.Error(0)
}

func (m *ChannelRepository) Get(ctx context.Context, id string) (*channel.Channel, error) {
	args := m.Called(ctx, id)
	if ch, ok := args.Get(0).(*channel.Channel); ok {
		return ch, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ChannelRepository) Update(ctx context.Context, ch *channel.Channel) error {
	args := m.Called(ctx, ch)
	return args.Error(0)
}

func (m *ChannelRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ChannelRepository) List(ctx context.Context, opts channel.ListOptions) ([]channel.Channel, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]channel.Channel); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ClientRepository is a mock for client.Repository.
type ClientRepository struct {
	mock.Mock
}

func (m *ClientRepository) Create(ctx context.Context, cl *client.Client) error {
	args := m.Called(ctx, cl)
	return args.Error(0)
}

func (m *ClientRepository) Get(ctx context.Context, id string) (*client.Client, error) {
	args := m.Called(ctx, id)
	if cl, ok := args.Get(0).(*client.Client); ok {
		return cl, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClientRepository) Update(ctx context.Context, cl *client.Client) error {
	args := m.Called(ctx, cl)
	return args.Error(0)
}

func (m *ClientRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ClientRepository) List(ctx context.Context, opts client.ListOptions) ([]client.Client, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]client.Client); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// DemandRepository is a mock for demand.Repository.
type DemandRepository struct {
	mock.Mock
}

func (m *DemandRepository) Create(ctx context.Context, dem *demand.Demand) error {
	args := m.Called(ctx, dem)
	return args.Error(0)
}

func (m *DemandRepository) Get(ctx context.Context, id string) (*demand.Demand, error) {
	args := m.Called(ctx, id)
	if dem, ok := args.Get(0).(*demand.Demand); ok {
		return dem, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DemandRepository) Update(ctx context.Context, dem *demand.Demand) error {
	args := m.Called(ctx, dem)
	return args.Error(0)
}

func (m *DemandRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *DemandRepository) List(ctx context.Context, opts demand.ListOptions) ([]demand.Demand, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]demand.Demand); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DemandRepository) CreateEntry(ctx context.Context, entry *demand.TimeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *DemandRepository) GetEntry(ctx context.Context, id string) (*demand.TimeEntry, error) {
	args := m.Called(ctx, id)
	if entry, ok := args.Get(0).(*demand.TimeEntry); ok {
		return entry, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DemandRepository) DeleteEntry(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *DemandRepository) ListEntries(ctx context.Context, opts demand.EntryListOptions) ([]demand.TimeEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]demand.TimeEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DemandRepository) TotalLoggedHours(ctx context.Context, demandID string) (float64, error) {
	args := m.Called(ctx, demandID)
	return args.Get(0).(float64), args.Error(1)
}

// ApprovalRepository is a mock for approval.Repository.
type ApprovalRepository struct {
	mock.Mock
}

func (m *ApprovalRepository) Create(ctx context.Context, appr *approval.Approval) error {
	args := m.Called(ctx, appr)
	return args.Error(0)
}

func (m *ApprovalRepository) Get(ctx context.Context, id string) (*approval.Approval, error) {
	args := m.Called(ctx, id)
	if appr, ok := args.Get(0).(*approval.Approval); ok {
		return appr, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ApprovalRepository) List(ctx context.Context, opts approval.ListOptions) ([]approval.Approval, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]approval.Approval); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ApprovalRepository) TransitionBulk(ctx context.Context, ids []string, fromStatus, toStatus approval.Status, reason *string, reviewedBy string, reviewedAt time.Time) error {
	args := m.Called(ctx, ids, fromStatus, toStatus, reason, reviewedBy, reviewedAt)
	return args.Error(0)
}

// UserRepository is a mock for user.Repository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetByKeyHash(ctx context.Context, keyHash string) (*user.User, error) {
	args := m.Called(ctx, keyHash)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepository) List(ctx context.Context, opts user.ListOptions) ([]user.User, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]user.User); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) AddKey(ctx context.Context, userID, keyHash string) error {
	args := m.Called(ctx, userID, keyHash)
	return args.Error(0)
}

// AuditRepository is a mock for audit.Repository.
type AuditRepository struct {
	mock.Mock
}

func (m *AuditRepository) Log(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *AuditRepository) List(ctx context.Context, opts audit.ListOptions) ([]audit.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]audit.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
