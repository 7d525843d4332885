package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gestorhq/gestor/internal/config"
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

func main() {
	root := &cobra.Command{
		Use:           "gestor",
		Short:         "Consultancy back office: projects, demands, time and approvals",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newAPIKeyCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			logger, closeLog, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			svc, userSvc := buildServices(db, logger)

			var authMiddleware func(http.Handler) http.Handler
			if cfg.Auth.Enabled {
				authMiddleware = transport.AuthMiddleware(userSvc)
			} else {
				logger.Warn("authentication disabled")
			}
			router := transport.NewServer(svc, authMiddleware)

			addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
			httpServer := &http.Server{
				Addr:    addr,
				Handler: router,
			}

			go func() {
				logger.Info("server listening", "addr", addr)
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("server error", "error", err)
				}
			}()

			waitForShutdown(logger, httpServer)
			return nil
		},
	}
}

func newAPIKeyCmd() *cobra.Command {
	var name, email, role string

	cmd := &cobra.Command{
		Use:   "apikey",
		Short: "Create a user with an API key and print the key once",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			userSvc := user.NewService(sqlite.NewUserRepository(db), slog.New(slog.NewTextHandler(io.Discard, nil)))

			ctx := context.Background()
			u, err := userSvc.Create(ctx, user.CreateRequest{
				Name:  name,
				Email: email,
				Role:  user.Role(role),
			})
			if err != nil {
				return fmt.Errorf("creating user: %w", err)
			}

			key, err := userSvc.CreateAPIKey(ctx, u.ID)
			if err != nil {
				return fmt.Errorf("creating api key: %w", err)
			}

			fmt.Printf("user: %s (%s)\napi key: %s\n", u.ID, u.Role, key)
			fmt.Println("store the key now; it is not shown again")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "user name")
	cmd.Flags().StringVar(&email, "email", "", "user email")
	cmd.Flags().StringVar(&role, "role", string(user.RoleAdmin), "user role (view|consultant|admin|master-admin)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func openDB(cfg config.Config) (*sqlite.DB, error) {
	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return nil, fmt.Errorf("preparing database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

func buildServices(db *sqlite.DB, logger *slog.Logger) (transport.Services, *user.Service) {
	projectRepo := sqlite.NewProjectRepository(db)
	consultantRepo := sqlite.NewConsultantRepository(db)
	channelRepo := sqlite.NewChannelRepository(db)
	clientRepo := sqlite.NewClientRepository(db)
	demandRepo := sqlite.NewDemandRepository(db)
	approvalRepo := sqlite.NewApprovalRepository(db)
	userRepo := sqlite.NewUserRepository(db)
	auditRepo := sqlite.NewAuditRepository(db)

	userSvc := user.NewService(userRepo, logger)
	live := report.NewLiveSource(projectRepo, demandRepo, consultantRepo)

	return transport.Services{
		Projects:    project.NewService(projectRepo, logger),
		Consultants: consultant.NewService(consultantRepo, logger),
		Channels:    channel.NewService(channelRepo, logger),
		Clients:     client.NewService(clientRepo, logger),
		Demands:     demand.NewService(demandRepo, projectRepo, auditRepo, logger),
		Approvals:   approval.NewService(approvalRepo, demandRepo, consultantRepo, auditRepo, logger),
		Users:       userSvc,
		Reports:     report.NewService(live, nil, logger),
	}, userSvc
}

func newLogger(cfg config.Config) (*slog.Logger, func(), error) {
	logWriter := io.Writer(os.Stdout)
	closeLog := func() {}

	if logPath := os.Getenv("GESTOR_LOG_PATH"); logPath != "" {
		fileWriter, file, err := newLogFileWriter(logPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		logWriter = fileWriter
		closeLog = func() { file.Close() }
	}

	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	return logger, closeLog, nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

const (
	maxLogSizeBytes  = 6 * 1024 * 1024
	keepLogSizeBytes = 5 * 1024 * 1024
)

// logFileWriter appends to a single log file, trimming it back to
// keepLogSizeBytes once it crosses maxLogSizeBytes.
type logFileWriter struct {
	path string
	file *os.File
	mu   sync.Mutex
}

func newLogFileWriter(path string) (*logFileWriter, *os.File, error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	writer := &logFileWriter{path: path, file: file}
	if err := writer.truncateIfNeeded(); err != nil {
		return nil, nil, err
	}
	return writer, file, nil
}

func (w *logFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}
	if err := w.truncateIfNeeded(); err != nil {
		return n, err
	}
	return n, nil
}

func (w *logFileWriter) truncateIfNeeded() error {
	info, err := w.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= maxLogSizeBytes {
		return nil
	}

	buf := make([]byte, keepLogSizeBytes)
	if _, err := w.file.Seek(size-keepLogSizeBytes, io.SeekStart); err != nil {
		return err
	}
	n, err := w.file.Read(buf)
	if err != nil && err != io.EOF {
		return err
	}
	buf = buf[:n]

	if err := w.file.Truncate(0); err != nil {
		return err
	}
	if _, err := w.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := w.file.Write(buf); err != nil {
		return err
	}
	_, err = w.file.Seek(0, io.SeekEnd)
	return err
}
