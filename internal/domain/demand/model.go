package demand

import "time"

// Status represents the workflow state of a demand.
type Status string

const (
	StatusPending          Status = "pending"
	StatusInProgress       Status = "in-progress"
	StatusAwaitingFeedback Status = "awaiting-feedback"
	StatusInReview         Status = "in-review"
	StatusCompleted        Status = "completed"
	StatusCancelled        Status = "cancelled"
)

// Statuses lists every valid demand status.
var Statuses = []Status{
	StatusPending,
	StatusInProgress,
	StatusAwaitingFeedback,
	StatusInReview,
	StatusCompleted,
	StatusCancelled,
}

// TaskStatuses is the reduced vocabulary used by plain tasks, which skip
// the awaiting-feedback stage.
var TaskStatuses = []Status{
	StatusPending,
	StatusInProgress,
	StatusInReview,
	StatusCompleted,
	StatusCancelled,
}

// Valid reports whether s is a known demand status.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// ValidTask reports whether s is allowed for the task variant.
func (s Status) ValidTask() bool {
	for _, known := range TaskStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Priority represents urgency, shared between demands and tasks.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists every valid priority.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

// Demand is a unit of requested work inside a project, tracked with logged
// hours from time entries.
type Demand struct {
	ID             string    `json:"id"`
	ProjectID      string    `json:"project_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Status         Status    `json:"status"`
	Priority       Priority  `json:"priority"`
	EstimatedHours float64   `json:"estimated_hours"`
	LoggedHours    float64   `json:"logged_hours"`
	CreatedAt      time.Time `json:"created_at"`
	ModifiedAt     time.Time `json:"modified_at"`
}

// TimeEntry is one consultant's logged hours against a demand on a date.
type TimeEntry struct {
	ID           string    `json:"id"`
	DemandID     string    `json:"demand_id"`
	ConsultantID string    `json:"consultant_id"`
	EntryDate    time.Time `json:"entry_date"`
	Hours        float64   `json:"hours"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// SearchFields returns the fields matched by free-text search.
func SearchFields(d Demand) []string {
	return []string{d.Title, d.Description}
}
