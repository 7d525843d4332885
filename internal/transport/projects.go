package transport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gestorhq/gestor/internal/domain/project"
	"github.com/gestorhq/gestor/internal/filter"
)

type createProjectRequest struct {
	ID             string               `json:"id,omitempty"`
	ClientID       string               `json:"client_id,omitempty"`
	ChannelID      string               `json:"channel_id,omitempty"`
	Name           string               `json:"name"`
	Description    string               `json:"description,omitempty"`
	Status         project.Status       `json:"status,omitempty"`
	ChannelRate    float64              `json:"channel_rate,omitempty"`
	ConsultantRate float64              `json:"consultant_rate,omitempty"`
	EstimatedHours float64              `json:"estimated_hours,omitempty"`
	StartDate      time.Time            `json:"start_date,omitempty"`
	EndDate        time.Time            `json:"end_date,omitempty"`
	Assignments    []project.Assignment `json:"assignments,omitempty"`
}

type updateProjectRequest struct {
	Name           *string              `json:"name,omitempty"`
	Description    *string              `json:"description,omitempty"`
	Status         *project.Status      `json:"status,omitempty"`
	ChannelRate    *float64             `json:"channel_rate,omitempty"`
	ConsultantRate *float64             `json:"consultant_rate,omitempty"`
	EstimatedHours *float64             `json:"estimated_hours,omitempty"`
	StartDate      *time.Time           `json:"start_date,omitempty"`
	EndDate        *time.Time           `json:"end_date,omitempty"`
	Assignments    []project.Assignment `json:"assignments,omitempty"`
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var body createProjectRequest
	if !decodeBody(w, r, &body) {
		return
	}

	proj, err := s.svc.Projects.Create(r.Context(), project.CreateRequest{
		ID:             body.ID,
		ClientID:       body.ClientID,
		ChannelID:      body.ChannelID,
		Name:           body.Name,
		Description:    body.Description,
		Status:         body.Status,
		ChannelRate:    body.ChannelRate,
		ConsultantRate: body.ConsultantRate,
		EstimatedHours: body.EstimatedHours,
		StartDate:      body.StartDate,
		EndDate:        body.EndDate,
		Assignments:    body.Assignments,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, proj)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	proj, err := s.svc.Projects.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	var body updateProjectRequest
	if !decodeBody(w, r, &body) {
		return
	}

	proj, err := s.svc.Projects.Update(r.Context(), project.UpdateRequest{
		ID:             chi.URLParam(r, "id"),
		Name:           body.Name,
		Description:    body.Description,
		Status:         body.Status,
		ChannelRate:    body.ChannelRate,
		ConsultantRate: body.ConsultantRate,
		EstimatedHours: body.EstimatedHours,
		StartDate:      body.StartDate,
		EndDate:        body.EndDate,
		Assignments:    body.Assignments,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Projects.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := project.ListOptions{
		ClientID:  q.Get("client_id"),
		ChannelID: q.Get("channel_id"),
	}
	if status := q.Get("status"); status != "" && status != filter.All {
		opts.Statuses = []project.Status{project.Status(status)}
	}

	projects, err := s.svc.Projects.List(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	projects = filter.Search(projects, q.Get("q"), project.SearchFields)
	if projects == nil {
		projects = []project.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}
