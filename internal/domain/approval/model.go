package approval

import "time"

// Status represents the financial-review state of a logged time entry.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusPaid     Status = "paid"
)

// Statuses lists every valid approval status.
var Statuses = []Status{StatusPending, StatusApproved, StatusRejected, StatusPaid}

// Valid reports whether s is a known approval status.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Approval wraps a time entry through financial review. Amount is fixed when
// the approval is submitted: the entry's hours at the consultant's rate of
// that moment. Later rate changes do not reprice pending approvals.
type Approval struct {
	ID           string     `json:"id"`
	TimeEntryID  string     `json:"time_entry_id"`
	ConsultantID string     `json:"consultant_id"`
	Hours        float64    `json:"hours"`
	Amount       float64    `json:"amount"`
	Status       Status     `json:"status"`
	Reason       string     `json:"reason,omitempty"`
	ReviewedBy   *string    `json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
