package project

// ListOptions provides filtering options for listing projects.
type ListOptions struct {
	Statuses  []Status
	ClientID  string
	ChannelID string
	Limit     int
	Offset    int
}
