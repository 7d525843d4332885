package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gestorhq/gestor/internal/domain/user"
	"github.com/gestorhq/gestor/internal/filter"
)

type createUserRequest struct {
	ID    string    `json:"id,omitempty"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  user.Role `json:"role,omitempty"`
}

type updateUserRequest struct {
	Name   *string    `json:"name,omitempty"`
	Email  *string    `json:"email,omitempty"`
	Role   *user.Role `json:"role,omitempty"`
	Active *bool      `json:"active,omitempty"`
}

type apiKeyResponse struct {
	Key string `json:"key"`
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var body createUserRequest
	if !decodeBody(w, r, &body) {
		return
	}

	u, err := s.svc.Users.Create(r.Context(), user.CreateRequest{
		ID:    body.ID,
		Name:  body.Name,
		Email: body.Email,
		Role:  body.Role,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.svc.Users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	var body updateUserRequest
	if !decodeBody(w, r, &body) {
		return
	}

	u, err := s.svc.Users.Update(r.Context(), user.UpdateRequest{
		ID:     chi.URLParam(r, "id"),
		Name:   body.Name,
		Email:  body.Email,
		Role:   body.Role,
		Active: body.Active,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var opts user.ListOptions
	if role := q.Get("role"); role != "" && role != filter.All {
		opts.Roles = []user.Role{user.Role(role)}
	}

	users, err := s.svc.Users.List(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	users = filter.Search(users, q.Get("q"), user.SearchFields)
	if users == nil {
		users = []user.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// createUserKey mints an API key; the plaintext is returned exactly once.
func (s *Server) createUserKey(w http.ResponseWriter, r *http.Request) {
	key, err := s.svc.Users.CreateAPIKey(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, apiKeyResponse{Key: key})
}
