package approval

import "strings"

// ValidateTransition validates a requested status transition. Paid and
// rejected are terminal.
func ValidateTransition(fromStatus, toStatus Status, reason *string) error {
	valid := false
	switch fromStatus {
	case StatusPending:
		if toStatus == StatusApproved || toStatus == StatusRejected {
			valid = true
		}
	case StatusApproved:
		if toStatus == StatusPaid {
			valid = true
		}
	}

	if !valid {
		return ErrInvalidTransition
	}

	if toStatus == StatusRejected {
		if reason == nil || strings.TrimSpace(*reason) == "" {
			return ErrMissingReason
		}
	}

	return nil
}
