package audit

import "time"

// EventType represents the type of audited event
type EventType string

const (
	TypeProjectCreated    EventType = "project_created"
	TypeProjectUpdated    EventType = "project_updated"
	TypeDemandCreated     EventType = "demand_created"
	TypeTimeLogged        EventType = "time_logged"
	TypeApprovalSubmitted EventType = "approval_submitted"
	TypeApprovalReviewed  EventType = "approval_reviewed"
	TypeApprovalPaid      EventType = "approval_paid"
)

// Entry represents an event in the audit log
type Entry struct {
	ID        int64     `json:"id"`
	EntityID  *string   `json:"entity_id,omitempty"`
	ActorID   *string   `json:"actor_id,omitempty"`
	EventType EventType `json:"type"`
	Summary   string    `json:"summary"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
