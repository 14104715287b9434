package enums

import "fmt"

// NotificationType labels the workflow event that produced a notification.
type NotificationType string

const (
	NotificationTypeNewOrder      NotificationType = "new_order"
	NotificationTypeNewDelivery   NotificationType = "new_delivery"
	NotificationTypeOrderStatus   NotificationType = "order_status"
	NotificationTypeOrderAccepted NotificationType = "order_accepted"
)

var validNotificationTypes = []NotificationType{
	NotificationTypeNewOrder,
	NotificationTypeNewDelivery,
	NotificationTypeOrderStatus,
	NotificationTypeOrderAccepted,
}

// IsValid checks whether the given type matches the canonical enum.
func (n NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationType converts raw strings into NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}
