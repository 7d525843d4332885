package consultant

import "errors"

var (
	// ErrConsultantNotFound indicates the consultant doesn't exist.
	ErrConsultantNotFound = errors.New("consultant not found")
	// ErrInvalidInput indicates invalid consultant input.
	ErrInvalidInput = errors.New("invalid consultant input")
)
