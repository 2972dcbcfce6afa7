package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fleet-rental/internal/entities"

	"github.com/go-redis/redis/v8"
)

const (
	unreadNotificationsKey = "fleet:notifications:unread"
	maxUnreadNotifications = 500
	unreadNotificationsTTL = 7 * 24 * time.Hour
)

type NotificationRepositoryInterface interface {
	Push(ctx context.Context, n entities.Notification) error
	// PopUnread returns pending notifications oldest first and marks them read.
	PopUnread(ctx context.Context) ([]entities.Notification, error)
}

type RedisNotificationRepository struct {
	client *redis.Client
}

func NewRedisNotificationRepository(client *redis.Client) NotificationRepositoryInterface {
	return &RedisNotificationRepository{client: client}
}

func (r *RedisNotificationRepository) Push(ctx context.Context, n entities.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, unreadNotificationsKey, payload)
	pipe.LTrim(ctx, unreadNotificationsKey, -maxUnreadNotifications, -1)
	pipe.Expire(ctx, unreadNotificationsKey, unreadNotificationsTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *RedisNotificationRepository) PopUnread(ctx context.Context) ([]entities.Notification, error) {
	pipe := r.client.TxPipeline()
	items := pipe.LRange(ctx, unreadNotificationsKey, 0, -1)
	pipe.Del(ctx, unreadNotificationsKey)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, err
	}

	raw, err := items.Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}

	out := make([]entities.Notification, 0, len(raw))
	for _, item := range raw {
		var n entities.Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}
