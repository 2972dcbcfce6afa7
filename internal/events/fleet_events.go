package events

import "fleet-rental/internal/entities"

const NotificationRequested = "notification.requested"

// NotificationRequestedEvent carries a message emitted after a fleet operation commits.
type NotificationRequestedEvent struct {
	Notification entities.Notification
}

func (e NotificationRequestedEvent) Name() string {
	return NotificationRequested
}
