package listeners

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fleet-rental/internal/entities"
	"fleet-rental/internal/events"
	"fleet-rental/pkg/eventbus"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryNotificationRepo struct {
	mu    sync.Mutex
	items []entities.Notification
	err   error
}

func (r *memoryNotificationRepo) Push(ctx context.Context, n entities.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.items = append(r.items, n)
	return nil
}

func (r *memoryNotificationRepo) PopUnread(ctx context.Context) ([]entities.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.items
	r.items = nil
	return out, nil
}

func TestNotificationListener_StoresPublishedNotifications(t *testing.T) {
	repo := &memoryNotificationRepo{}
	bus := eventbus.New(zap.NewNop())
	NewNotificationListener(repo, zap.NewNop()).Register(bus)

	n := entities.Notification{ID: uuid.New(), Message: "Unit E-101 booked", Type: entities.NotificationSuccess, CreatedAt: time.Now()}
	bus.Publish(context.Background(), events.NotificationRequestedEvent{Notification: n})
	bus.Wait()

	stored, err := repo.PopUnread(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, n.ID, stored[0].ID)
}

func TestNotificationListener_StoreFailureIsReported(t *testing.T) {
	repo := &memoryNotificationRepo{err: errors.New("redis down")}
	l := NewNotificationListener(repo, zap.NewNop())

	err := l.handleNotificationRequested(context.Background(), events.NotificationRequestedEvent{Notification: entities.Notification{ID: uuid.New()}})
	assert.ErrorContains(t, err, "redis down")
}
