package transport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gestorhq/gestor/internal/domain/demand"
	"github.com/gestorhq/gestor/internal/filter"
)

type createDemandRequest struct {
	ID             string          `json:"id,omitempty"`
	ProjectID      string          `json:"project_id"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	Status         demand.Status   `json:"status,omitempty"`
	Priority       demand.Priority `json:"priority,omitempty"`
	EstimatedHours float64         `json:"estimated_hours,omitempty"`
}

type updateDemandRequest struct {
	Title          *string          `json:"title,omitempty"`
	Description    *string          `json:"description,omitempty"`
	Status         *demand.Status   `json:"status,omitempty"`
	Priority       *demand.Priority `json:"priority,omitempty"`
	EstimatedHours *float64         `json:"estimated_hours,omitempty"`
}

type logTimeRequest struct {
	DemandID     string    `json:"demand_id"`
	ConsultantID string    `json:"consultant_id"`
	EntryDate    time.Time `json:"entry_date"`
	Hours        float64   `json:"hours"`
	Description  string    `json:"description,omitempty"`
}

func (s *Server) createDemand(w http.ResponseWriter, r *http.Request) {
	var body createDemandRequest
	if !decodeBody(w, r, &body) {
		return
	}

	dem, err := s.svc.Demands.Create(r.Context(), demand.CreateRequest{
		ID:             body.ID,
		ProjectID:      body.ProjectID,
		Title:          body.Title,
		Description:    body.Description,
		Status:         body.Status,
		Priority:       body.Priority,
		EstimatedHours: body.EstimatedHours,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dem)
}

func (s *Server) getDemand(w http.ResponseWriter, r *http.Request) {
	dem, err := s.svc.Demands.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dem)
}

func (s *Server) updateDemand(w http.ResponseWriter, r *http.Request) {
	var body updateDemandRequest
	if !decodeBody(w, r, &body) {
		return
	}

	dem, err := s.svc.Demands.Update(r.Context(), demand.UpdateRequest{
		ID:             chi.URLParam(r, "id"),
		Title:          body.Title,
		Description:    body.Description,
		Status:         body.Status,
		Priority:       body.Priority,
		EstimatedHours: body.EstimatedHours,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dem)
}

func (s *Server) deleteDemand(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Demands.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listDemands(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := demand.ListOptions{ProjectID: q.Get("project_id")}
	if status := q.Get("status"); status != "" && status != filter.All {
		opts.Statuses = []demand.Status{demand.Status(status)}
	}
	if priority := q.Get("priority"); priority != "" && priority != filter.All {
		opts.Priorities = []demand.Priority{demand.Priority(priority)}
	}

	demands, err := s.svc.Demands.List(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	demands = filter.Search(demands, q.Get("q"), demand.SearchFields)
	if demands == nil {
		demands = []demand.Demand{}
	}
	writeJSON(w, http.StatusOK, demands)
}

func (s *Server) logTime(w http.ResponseWriter, r *http.Request) {
	var body logTimeRequest
	if !decodeBody(w, r, &body) {
		return
	}

	entry, err := s.svc.Demands.LogTime(r.Context(), demand.LogTimeRequest{
		DemandID:     body.DemandID,
		ConsultantID: body.ConsultantID,
		EntryDate:    body.EntryDate,
		Hours:        body.Hours,
		Description:  body.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) deleteTimeEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Demands.DeleteEntry(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listTimeEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := demand.EntryListOptions{
		DemandID:     q.Get("demand_id"),
		ConsultantID: q.Get("consultant_id"),
	}
	if from := q.Get("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid from date"})
			return
		}
		opts.From = t
	}
	if to := q.Get("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid to date"})
			return
		}
		opts.To = t
	}

	entries, err := s.svc.Demands.Entries(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []demand.TimeEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
