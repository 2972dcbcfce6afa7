package services

import (
	"context"
	"time"

	"fleet-rental/internal/entities"
	"fleet-rental/internal/events"
	"fleet-rental/internal/repositories"
	"fleet-rental/pkg/eventbus"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type eventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}

// EventBusNotifier hands notifications to the event bus; storage happens in a listener.
type EventBusNotifier struct {
	bus    eventPublisher
	logger *zap.Logger
}

func NewEventBusNotifier(bus eventPublisher, logger *zap.Logger) *EventBusNotifier {
	return &EventBusNotifier{bus: bus, logger: logger}
}

func (n *EventBusNotifier) Notify(ctx context.Context, message string, kind entities.NotificationType) {
	notification := entities.Notification{
		ID:        uuid.New(),
		Message:   message,
		Type:      kind,
		CreatedAt: time.Now(),
	}
	n.logger.Debug("notification requested", zap.String("type", string(kind)), zap.String("message", message))
	n.bus.Publish(ctx, events.NotificationRequestedEvent{Notification: notification})
}

type NotificationServiceInterface interface {
	GetUnread(ctx context.Context) ([]entities.Notification, error)
}

type NotificationService struct {
	repo   repositories.NotificationRepositoryInterface
	logger *zap.Logger
}

func NewNotificationService(repo repositories.NotificationRepositoryInterface, logger *zap.Logger) NotificationServiceInterface {
	return &NotificationService{repo: repo, logger: logger}
}

// GetUnread drains the unread queue.
func (s *NotificationService) GetUnread(ctx context.Context) ([]entities.Notification, error) {
	list, err := s.repo.PopUnread(ctx)
	if err != nil {
		s.logger.Error("failed to read notifications", zap.Error(err))
		return nil, err
	}
	if list == nil {
		list = []entities.Notification{}
	}
	return list, nil
}
