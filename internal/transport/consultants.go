package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gestorhq/gestor/internal/domain/consultant"
	"github.com/gestorhq/gestor/internal/filter"
)

type createConsultantRequest struct {
	ID         string  `json:"id,omitempty"`
	Name       string  `json:"name"`
	Email      string  `json:"email,omitempty"`
	HourlyRate float64 `json:"hourly_rate,omitempty"`
}

type updateConsultantRequest struct {
	Name       *string  `json:"name,omitempty"`
	Email      *string  `json:"email,omitempty"`
	HourlyRate *float64 `json:"hourly_rate,omitempty"`
	Active     *bool    `json:"active,omitempty"`
}

func (s *Server) createConsultant(w http.ResponseWriter, r *http.Request) {
	var body createConsultantRequest
	if !decodeBody(w, r, &body) {
		return
	}

	cons, err := s.svc.Consultants.Create(r.Context(), consultant.CreateRequest{
		ID:         body.ID,
		Name:       body.Name,
		Email:      body.Email,
		HourlyRate: body.HourlyRate,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cons)
}

func (s *Server) getConsultant(w http.ResponseWriter, r *http.Request) {
	cons, err := s.svc.Consultants.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cons)
}

func (s *Server) updateConsultant(w http.ResponseWriter, r *http.Request) {
	var body updateConsultantRequest
	if !decodeBody(w, r, &body) {
		return
	}

	cons, err := s.svc.Consultants.Update(r.Context(), consultant.UpdateRequest{
		ID:         chi.URLParam(r, "id"),
		Name:       body.Name,
		Email:      body.Email,
		HourlyRate: body.HourlyRate,
		Active:     body.Active,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cons)
}

func (s *Server) deleteConsultant(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Consultants.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listConsultants(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var opts consultant.ListOptions
	switch q.Get("active") {
	case "active":
		active := true
		opts.Active = &active
	case "inactive":
		active := false
		opts.Active = &active
	}

	consultants, err := s.svc.Consultants.List(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	consultants = filter.Search(consultants, q.Get("q"), consultant.SearchFields)
	if consultants == nil {
		consultants = []consultant.Consultant{}
	}
	writeJSON(w, http.StatusOK, consultants)
}
