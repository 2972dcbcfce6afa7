package listeners

import (
	"context"
	"fmt"

	"fleet-rental/internal/events"
	"fleet-rental/internal/repositories"
	"fleet-rental/pkg/eventbus"

	"go.uber.org/zap"
)

// NotificationListener persists requested notifications in the unread queue.
type NotificationListener struct {
	repo   repositories.NotificationRepositoryInterface
	logger *zap.Logger
}

func NewNotificationListener(repo repositories.NotificationRepositoryInterface, logger *zap.Logger) *NotificationListener {
	return &NotificationListener{repo: repo, logger: logger}
}

func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.NotificationRequested, l.handleNotificationRequested)
}

func (l *NotificationListener) handleNotificationRequested(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.NotificationRequestedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	if err := l.repo.Push(ctx, e.Notification); err != nil {
		return fmt.Errorf("store notification %s: %w", e.Notification.ID, err)
	}
	l.logger.Debug("notification stored",
		zap.String("id", e.Notification.ID.String()),
		zap.String("type", string(e.Notification.Type)),
	)
	return nil
}
