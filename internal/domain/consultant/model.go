package consultant

import "time"

// Consultant is a billable person with a default hourly rate. Projects may
// override the rate per assignment.
type Consultant struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	HourlyRate float64   `json:"hourly_rate"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

// SearchFields returns the fields matched by free-text search.
func SearchFields(c Consultant) []string {
	return []string{c.Name, c.Email}
}
