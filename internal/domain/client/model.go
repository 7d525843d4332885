package client

import "time"

// Client is a company the consultancy bills, with its primary contact.
type Client struct {
	ID          string    `json:"id"`
	Company     string    `json:"company"`
	ContactName string    `json:"contact_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// SearchFields returns the fields matched by free-text search.
func SearchFields(c Client) []string {
	return []string{c.Company, c.ContactName, c.Email}
}
