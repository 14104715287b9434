package enums

import "fmt"

// RSVPStatus is a guest's response to an event invitation.
type RSVPStatus string

const (
	RSVPStatusPending  RSVPStatus = "Pending"
	RSVPStatusAccepted RSVPStatus = "Accepted"
	RSVPStatusDeclined RSVPStatus = "Declined"
)

var validRSVPStatuses = []RSVPStatus{
	RSVPStatusPending,
	RSVPStatusAccepted,
	RSVPStatusDeclined,
}

// IsValid checks whether the given status matches the canonical enum.
func (s RSVPStatus) IsValid() bool {
	for _, candidate := range validRSVPStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseRSVPStatus converts raw strings into RSVPStatus.
func ParseRSVPStatus(value string) (RSVPStatus, error) {
	for _, candidate := range validRSVPStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rsvp status %q", value)
}
