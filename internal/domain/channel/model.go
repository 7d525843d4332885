package channel

import "time"

// Type represents how a sales channel acquires work.
type Type string

const (
	TypeDirect    Type = "direct"
	TypePartner   Type = "partner"
	TypeReferral  Type = "referral"
	TypeMarketing Type = "marketing"
)

// Types lists every valid channel type.
var Types = []Type{TypeDirect, TypePartner, TypeReferral, TypeMarketing}

// Valid reports whether t is a known channel type.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Channel is a sales channel with its own billing rate and the days of the
// month its timesheet, invoice, and payment cycles close.
type Channel struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         Type      `json:"type"`
	HourlyRate   float64   `json:"hourly_rate"`
	TimesheetDay int       `json:"timesheet_day"`
	InvoiceDay   int       `json:"invoice_day"`
	PaymentDay   int       `json:"payment_day"`
	CreatedAt    time.Time `json:"created_at"`
}

// SearchFields returns the fields matched by free-text search.
func SearchFields(c Channel) []string {
	return []string{c.Name}
}
