package approval

import "errors"

var (
	// ErrApprovalNotFound indicates the approval doesn't exist.
	ErrApprovalNotFound = errors.New("approval not found")
	// ErrInvalidInput indicates invalid approval input.
	ErrInvalidInput = errors.New("invalid approval input")
	// ErrInvalidTransition indicates a state change the lifecycle forbids.
	ErrInvalidTransition = errors.New("invalid approval transition")
	// ErrMissingReason indicates a rejection without a reason.
	ErrMissingReason = errors.New("rejection requires a reason")
	// ErrBulkConflict indicates a bulk review could not apply to every
	// requested entry; nothing was changed.
	ErrBulkConflict = errors.New("bulk review conflict: no entries were changed")
)
