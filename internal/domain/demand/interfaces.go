package demand

import (
	"context"
	"time"
)

// Repository provides persistence for demands and their time entries.
type Repository interface {
	Create(ctx context.Context, dem *Demand) error
	Get(ctx context.Context, id string) (*Demand, error)
	Update(ctx context.Context, dem *Demand) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts ListOptions) ([]Demand, error)

	CreateEntry(ctx context.Context, entry *TimeEntry) error
	GetEntry(ctx context.Context, id string) (*TimeEntry, error)
	DeleteEntry(ctx context.Context, id string) error
	ListEntries(ctx context.Context, opts EntryListOptions) ([]TimeEntry, error)
	TotalLoggedHours(ctx context.Context, demandID string) (float64, error)
}

// ListOptions provides filtering options for listing demands.
type ListOptions struct {
	ProjectID  string
	Statuses   []Status
	Priorities []Priority
	Limit      int
	Offset     int
}

// EntryListOptions provides filtering options for listing time entries.
type EntryListOptions struct {
	DemandID     string
	ConsultantID string
	From         time.Time
	To           time.Time
	Limit        int
	Offset       int
}
