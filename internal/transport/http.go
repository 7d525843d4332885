package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gestorhq/gestor/internal/domain/approval"
	"github.com/gestorhq/gestor/internal/domain/channel"
	"github.com/gestorhq/gestor/internal/domain/client"
	"github.com/gestorhq/gestor/internal/domain/consultant"
	"github.com/gestorhq/gestor/internal/domain/demand"
	"github.com/gestorhq/gestor/internal/domain/project"
	"github.com/gestorhq/gestor/internal/domain/user"
	"github.com/gestorhq/gestor/internal/report"
)

// Services bundles everything the REST API serves.
type Services struct {
	Projects    *project.Service
	Consultants *consultant.Service
	Channels    *channel.Service
	Clients     *client.Service
	Demands     *demand.Service
	Approvals   *approval.Service
	Users       *user.Service
	Reports     *report.Service
}

// Server wires HTTP handlers.
type Server struct {
	svc Services
}

// NewServer creates an HTTP router with middleware. authMiddleware may be
// nil when authentication is disabled.
func NewServer(svc Services, authMiddleware func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()

	srv := &Server{svc: svc}

	r.Get("/health", srv.handleHealth)

	r.Route("/api", func(r chi.Router) {
		if authMiddleware != nil {
			r.Use(authMiddleware)
		}
		r.Use(ReadOnlyGuard)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", srv.listProjects)
			r.Post("/", srv.createProject)
			r.Get("/{id}", srv.getProject)
			r.Put("/{id}", srv.updateProject)
			r.Delete("/{id}", srv.deleteProject)
		})

		r.Route("/consultants", func(r chi.Router) {
			r.Get("/", srv.listConsultants)
			r.Post("/", srv.createConsultant)
			r.Get("/{id}", srv.getConsultant)
			r.Put("/{id}", srv.updateConsultant)
			r.Delete("/{id}", srv.deleteConsultant)
		})

		r.Route("/channels", func(r chi.Router) {
			r.Get("/", srv.listChannels)
			r.Get("/{id}", srv.getChannel)
			r.With(RequireRole(user.RoleAdmin)).Post("/", srv.createChannel)
			r.With(RequireRole(user.RoleAdmin)).Put("/{id}", srv.updateChannel)
			r.With(RequireRole(user.RoleAdmin)).Delete("/{id}", srv.deleteChannel)
		})

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", srv.listClients)
			r.Post("/", srv.createClient)
			r.Get("/{id}", srv.getClient)
			r.Put("/{id}", srv.updateClient)
			r.Delete("/{id}", srv.deleteClient)
		})

		r.Route("/demands", func(r chi.Router) {
			r.Get("/", srv.listDemands)
			r.Post("/", srv.createDemand)
			r.Get("/{id}", srv.getDemand)
			r.Put("/{id}", srv.updateDemand)
			r.Delete("/{id}", srv.deleteDemand)
		})

		r.Route("/time-entries", func(r chi.Router) {
			r.Get("/", srv.listTimeEntries)
			r.Post("/", srv.logTime)
			r.Delete("/{id}", srv.deleteTimeEntry)
		})

		r.Route("/approvals", func(r chi.Router) {
			r.Get("/", srv.listApprovals)
			r.Post("/", srv.submitApproval)
			r.Get("/{id}", srv.getApproval)
			r.With(RequireRole(user.RoleAdmin)).Post("/review", srv.reviewApprovals)
			r.With(RequireRole(user.RoleAdmin)).Post("/paid", srv.markApprovalsPaid)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", srv.listUsers)
			r.Get("/{id}", srv.getUser)
			r.With(RequireRole(user.RoleAdmin)).Post("/", srv.createUser)
			r.With(RequireRole(user.RoleAdmin)).Put("/{id}", srv.updateUser)
			r.With(RequireRole(user.RoleAdmin)).Post("/{id}/keys", srv.createUserKey)
		})

		r.Get("/dashboard", srv.getDashboard)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) getDashboard(w http.ResponseWriter, r *http.Request) {
	overview, err := s.svc.Reports.Overview(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}
