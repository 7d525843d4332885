package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gestorhq/gestor/internal/domain/channel"
	"github.com/gestorhq/gestor/internal/filter"
)

type createChannelRequest struct {
	ID           string       `json:"id,omitempty"`
	Name         string       `json:"name"`
	Type         channel.Type `json:"type"`
	HourlyRate   float64      `json:"hourly_rate,omitempty"`
	TimesheetDay int          `json:"timesheet_day"`
	InvoiceDay   int          `json:"invoice_day"`
	PaymentDay   int          `json:"payment_day"`
}

type updateChannelRequest struct {
	Name         *string       `json:"name,omitempty"`
	Type         *channel.Type `json:"type,omitempty"`
	HourlyRate   *float64      `json:"hourly_rate,omitempty"`
	TimesheetDay *int          `json:"timesheet_day,omitempty"`
	InvoiceDay   *int          `json:"invoice_day,omitempty"`
	PaymentDay   *int          `json:"payment_day,omitempty"`
}

func (s *Server) createChannel(w http.ResponseWriter, r *http.Request) {
	var body createChannelRequest
	if !decodeBody(w, r, &body) {
		return
	}

	ch, err := s.svc.Channels.Create(r.Context(), channel.CreateRequest{
		ID:           body.ID,
		Name:         body.Name,
		Type:         body.Type,
		HourlyRate:   body.HourlyRate,
		TimesheetDay: body.TimesheetDay,
		InvoiceDay:   body.InvoiceDay,
		PaymentDay:   body.PaymentDay,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ch)
}

func (s *Server) getChannel(w http.ResponseWriter, r *http.Request) {
	ch, err := s.svc.Channels.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ch)
}

func (s *Server) updateChannel(w http.ResponseWriter, r *http.Request) {
	var body updateChannelRequest
	if !decodeBody(w, r, &body) {
		return
	}

	ch, err := s.svc.Channels.Update(r.Context(), channel.UpdateRequest{
		ID:           chi.URLParam(r, "id"),
		Name:         body.Name,
		Type:         body.Type,
		HourlyRate:   body.HourlyRate,
		TimesheetDay: body.TimesheetDay,
		InvoiceDay:   body.InvoiceDay,
		PaymentDay:   body.PaymentDay,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ch)
}

func (s *Server) deleteChannel(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Channels.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listChannels(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var opts channel.ListOptions
	if t := q.Get("type"); t != "" && t != filter.All {
		opts.Types = []channel.Type{channel.Type(t)}
	}

	channels, err := s.svc.Channels.List(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	channels = filter.Search(channels, q.Get("q"), channel.SearchFields)
	if channels == nil {
		channels = []channel.Channel{}
	}
	writeJSON(w, http.StatusOK, channels)
}
