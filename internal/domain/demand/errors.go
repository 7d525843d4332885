package demand

import "errors"

var (
	// ErrDemandNotFound indicates the demand doesn't exist.
	ErrDemandNotFound = errors.New("demand not found")
	// ErrEntryNotFound indicates the time entry doesn't exist.
	ErrEntryNotFound = errors.New("time entry not found")
	// ErrInvalidInput indicates invalid demand or time entry input.
	ErrInvalidInput = errors.New("invalid demand input")
	// ErrInvalidStatus indicates an unknown demand status value.
	ErrInvalidStatus = errors.New("invalid demand status")
	// ErrInvalidPriority indicates an unknown priority value.
	ErrInvalidPriority = errors.New("invalid priority")
)
