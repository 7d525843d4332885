package testserver

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gestorhq/gestor/internal/domain/approval"
	"github.com/gestorhq/gestor/internal/domain/channel"
	"github.com/gestorhq/gestor/internal/domain/client"
	"github.com/gestorhq/gestor/internal/domain/consultant"
	"github.com/gestorhq/gestor/internal/domain/demand"
	"github.com/gestorhq/gestor/internal/domain/project"
	"github.com/gestorhq/gestor/internal/domain/user"
	"github.com/gestorhq/gestor/internal/report"
	"github.com/gestorhq/gestor/internal/sqlite"
	"github.com/gestorhq/gestor/internal/transport"
)

// TestServer is a fully wired HTTP API backed by an in-memory database.
type TestServer struct {
	Server *httptest.Server
	DB     *sqlite.DB
	Key    string
	UserID string
}

// New builds a test server with one seeded user of the given role and an
// API key for it.
func New(t *testing.T, role user.Role) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	projectRepo := sqlite.NewProjectRepository(db)
	consultantRepo := sqlite.NewConsultantRepository(db)
	channelRepo := sqlite.NewChannelRepository(db)
	clientRepo := sqlite.NewClientRepository(db)
	demandRepo := sqlite.NewDemandRepository(db)
	approvalRepo := sqlite.NewApprovalRepository(db)
	userRepo := sqlite.NewUserRepository(db)
	auditRepo := sqlite.NewAuditRepository(db)

	userSvc := user.NewService(userRepo, nil)
	svc := transport.Services{
		Projects:    project.NewService(projectRepo, nil),
		Consultants: consultant.NewService(consultantRepo, nil),
		Channels:    channel.NewService(channelRepo, nil),
		Clients:     client.NewService(clientRepo, nil),
		Demands:     demand.NewService(demandRepo, projectRepo, auditRepo, nil),
		Approvals:   approval.NewService(approvalRepo, demandRepo, consultantRepo, auditRepo, nil),
		Users:       userSvc,
		Reports: report.NewService(
			report.NewLiveSource(projectRepo, demandRepo, consultantRepo), nil, nil),
	}

	server := httptest.NewServer(transport.NewServer(svc, transport.AuthMiddleware(userSvc)))

	ctx := context.Background()
	u, err := userSvc.Create(ctx, user.CreateRequest{Name: "Test User", Email: "test@example.com", Role: role})
	require.NoError(t, err)
	key, err := userSvc.CreateAPIKey(ctx, u.ID)
	require.NoError(t, err)

	ts := &TestServer{
		Server: server,
		DB:     db,
		Key:    key,
		UserID: u.ID,
	}

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}

// AddUser seeds another user with a fresh API key and returns the key.
func (ts *TestServer) AddUser(t *testing.T, name string, role user.Role) (userID, key string) {
	t.Helper()

	userRepo := sqlite.NewUserRepository(ts.DB)
	userSvc := user.NewService(userRepo, nil)

	ctx := context.Background()
	u, err := userSvc.Create(ctx, user.CreateRequest{
		Name:  name,
		Email: fmt.Sprintf("%s-%d@example.com", strings.ToLower(strings.ReplaceAll(name, " ", "-")), time.Now().UnixNano()),
		Role:  role,
	})
	require.NoError(t, err)

	key, err = userSvc.CreateAPIKey(ctx, u.ID)
	require.NoError(t, err)
	return u.ID, key
}
