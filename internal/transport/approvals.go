package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gestorhq/gestor/internal/domain/approval"
	"github.com/gestorhq/gestor/internal/filter"
)

type submitApprovalRequest struct {
	TimeEntryID string `json:"time_entry_id"`
}

type reviewApprovalsRequest struct {
	IDs        []string `json:"ids"`
	Approve    bool     `json:"approve"`
	Reason     *string  `json:"reason,omitempty"`
	ReviewerID string   `json:"reviewer_id,omitempty"`
}

type markPaidRequest struct {
	IDs        []string `json:"ids"`
	ReviewerID string   `json:"reviewer_id,omitempty"`
}

// reviewerID prefers the authenticated user over the body field.
func reviewerID(r *http.Request, fromBody string) string {
	if u, ok := UserFromContext(r.Context()); ok {
		return u.ID
	}
	return fromBody
}

func (s *Server) submitApproval(w http.ResponseWriter, r *http.Request) {
	var body submitApprovalRequest
	if !decodeBody(w, r, &body) {
		return
	}

	appr, err := s.svc.Approvals.Submit(r.Context(), body.TimeEntryID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, appr)
}

func (s *Server) getApproval(w http.ResponseWriter, r *http.Request) {
	appr, err := s.svc.Approvals.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appr)
}

func (s *Server) listApprovals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := approval.ListOptions{ConsultantID: q.Get("consultant_id")}
	if status := q.Get("status"); status != "" && status != filter.All {
		opts.Statuses = []approval.Status{approval.Status(status)}
	}

	approvals, err := s.svc.Approvals.List(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	if approvals == nil {
		approvals = []approval.Approval{}
	}
	writeJSON(w, http.StatusOK, approvals)
}

func (s *Server) reviewApprovals(w http.ResponseWriter, r *http.Request) {
	var body reviewApprovalsRequest
	if !decodeBody(w, r, &body) {
		return
	}

	err := s.svc.Approvals.BulkReview(r.Context(), approval.ReviewRequest{
		IDs:        body.IDs,
		Approve:    body.Approve,
		Reason:     body.Reason,
		ReviewerID: reviewerID(r, body.ReviewerID),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) markApprovalsPaid(w http.ResponseWriter, r *http.Request) {
	var body markPaidRequest
	if !decodeBody(w, r, &body) {
		return
	}

	if err := s.svc.Approvals.MarkPaid(r.Context(), body.IDs, reviewerID(r, body.ReviewerID)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
