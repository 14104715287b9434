package enums

import "fmt"

// DeliveryStatus tracks a delivery through its lifecycle.
// pending -> assigned -> in_progress -> delivered, no reverse transitions.
type DeliveryStatus string

const (
	DeliveryStatusPending    DeliveryStatus = "pending"
	DeliveryStatusAssigned   DeliveryStatus = "assigned"
	DeliveryStatusInProgress DeliveryStatus = "in_progress"
	DeliveryStatusDelivered  DeliveryStatus = "delivered"
)

var validDeliveryStatuses = []DeliveryStatus{
	DeliveryStatusPending,
	DeliveryStatusAssigned,
	DeliveryStatusInProgress,
	DeliveryStatusDelivered,
}

// IsValid checks whether the given status matches the canonical enum.
func (s DeliveryStatus) IsValid() bool {
	for _, candidate := range validDeliveryStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further status transitions are possible.
func (s DeliveryStatus) IsTerminal() bool {
	return s == DeliveryStatusDelivered
}

// ParseDeliveryStatus converts raw strings into DeliveryStatus.
func ParseDeliveryStatus(value string) (DeliveryStatus, error) {
	for _, candidate := range validDeliveryStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid delivery status %q", value)
}
