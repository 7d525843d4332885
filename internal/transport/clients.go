package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gestorhq/gestor/internal/domain/client"
	"github.com/gestorhq/gestor/internal/filter"
)

type createClientRequest struct {
	ID          string `json:"id,omitempty"`
	Company     string `json:"company"`
	ContactName string `json:"contact_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

type updateClientRequest struct {
	Company     *string `json:"company,omitempty"`
	ContactName *string `json:"contact_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

func (s *Server) createClient(w http.ResponseWriter, r *http.Request) {
	var body createClientRequest
	if !decodeBody(w, r, &body) {
		return
	}

	cl, err := s.svc.Clients.Create(r.Context(), client.CreateRequest{
		ID:          body.ID,
		Company:     body.Company,
		ContactName: body.ContactName,
		Email:       body.Email,
		Phone:       body.Phone,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cl)
}

func (s *Server) getClient(w http.ResponseWriter, r *http.Request) {
	cl, err := s.svc.Clients.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cl)
}

func (s *Server) updateClient(w http.ResponseWriter, r *http.Request) {
	var body updateClientRequest
	if !decodeBody(w, r, &body) {
		return
	}

	cl, err := s.svc.Clients.Update(r.Context(), client.UpdateRequest{
		ID:          chi.URLParam(r, "id"),
		Company:     body.Company,
		ContactName: body.ContactName,
		Email:       body.Email,
		Phone:       body.Phone,
		Active:      body.Active,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cl)
}

func (s *Server) deleteClient(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Clients.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listClients(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var opts client.ListOptions
	switch q.Get("active") {
	case "active":
		active := true
		opts.Active = &active
	case "inactive":
		active := false
		opts.Active = &active
	}

	clients, err := s.svc.Clients.List(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	clients = filter.Search(clients, q.Get("q"), client.SearchFields)
	if clients == nil {
		clients = []client.Client{}
	}
	writeJSON(w, http.StatusOK, clients)
}
