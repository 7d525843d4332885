package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gestorhq/gestor/internal/domain/approval"
	"github.com/gestorhq/gestor/internal/domain/channel"
	"github.com/gestorhq/gestor/internal/domain/client"
	"github.com/gestorhq/gestor/internal/domain/consultant"
	"github.com/gestorhq/gestor/internal/domain/demand"
	"github.com/gestorhq/gestor/internal/domain/project"
	"github.com/gestorhq/gestor/internal/domain/user"
	"github.com/gestorhq/gestor/internal/repository"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var notFoundErrors = []error{
	project.ErrProjectNotFound,
	consultant.ErrConsultantNotFound,
	channel.ErrChannelNotFound,
	client.ErrClientNotFound,
	demand.ErrDemandNotFound,
	demand.ErrEntryNotFound,
	approval.ErrApprovalNotFound,
	user.ErrUserNotFound,
	repository.ErrNotFound,
}

var badRequestErrors = []error{
	project.ErrInvalidInput,
	project.ErrInvalidStatus,
	consultant.ErrInvalidInput,
	channel.ErrInvalidInput,
	channel.ErrInvalidCycleDay,
	client.ErrInvalidInput,
	demand.ErrInvalidInput,
	demand.ErrInvalidStatus,
	demand.ErrInvalidPriority,
	approval.ErrInvalidInput,
	approval.ErrMissingReason,
	user.ErrInvalidInput,
	user.ErrInvalidRole,
	repository.ErrForeignKeyViolation,
	repository.ErrInvalidInput,
}

var conflictErrors = []error{
	approval.ErrBulkConflict,
	approval.ErrInvalidTransition,
	repository.ErrConflict,
}

// writeError maps domain sentinel errors to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case matchesAny(err, notFoundErrors):
		status = http.StatusNotFound
	case matchesAny(err, badRequestErrors):
		status = http.StatusBadRequest
	case matchesAny(err, conflictErrors):
		status = http.StatusConflict
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func matchesAny(err error, sentinels []error) bool {
	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
