package project

import "time"

// Status represents the lifecycle state of a project.
type Status string

const (
	StatusPlanning       Status = "planning"
	StatusInProgress     Status = "in-progress"
	StatusPaused         Status = "paused"
	StatusAwaitingClient Status = "awaiting-client"
	StatusCompleted      Status = "completed"
	StatusCancelled      Status = "cancelled"
)

// Statuses lists every valid project status.
var Statuses = []Status{
	StatusPlanning,
	StatusInProgress,
	StatusPaused,
	StatusAwaitingClient,
	StatusCompleted,
	StatusCancelled,
}

// Valid reports whether s is a known project status.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Assignment links one consultant to a project with a per-assignment rate
// and the hours that consultant has logged against the project.
type Assignment struct {
	ConsultantID string  `json:"consultant_id"`
	HourlyRate   float64 `json:"hourly_rate"`
	HoursLogged  float64 `json:"hours_logged"`
}

// Project represents a unit of client work billed through a sales channel.
type Project struct {
	ID             string       `json:"id"`
	ClientID       string       `json:"client_id"`
	ChannelID      string       `json:"channel_id"`
	Name           string       `json:"name"`
	Description    string       `json:"description,omitempty"`
	Status         Status       `json:"status"`
	ChannelRate    float64      `json:"channel_rate"`
	ConsultantRate float64      `json:"consultant_rate"`
	EstimatedHours float64      `json:"estimated_hours"`
	WorkedHours    float64      `json:"worked_hours"`
	StartDate      time.Time    `json:"start_date"`
	EndDate        time.Time    `json:"end_date"`
	Assignments    []Assignment `json:"assignments,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	ModifiedAt     time.Time    `json:"modified_at"`
}

// EffectiveAssignments normalizes the legacy single-consultant shape into
// the canonical assignment list. Projects created before multi-consultant
// support carry only ConsultantRate/WorkedHours; they are presented as a
// single synthetic assignment so metric code only ever sees one shape.
func (p *Project) EffectiveAssignments() []Assignment {
	if len(p.Assignments) > 0 {
		return p.Assignments
	}
	if p.ConsultantRate == 0 && p.WorkedHours == 0 {
		return nil
	}
	return []Assignment{{HourlyRate: p.ConsultantRate, HoursLogged: p.WorkedHours}}
}

// SearchFields returns the fields matched by free-text search.
func SearchFields(p Project) []string {
	return []string{p.Name, p.Description}
}
