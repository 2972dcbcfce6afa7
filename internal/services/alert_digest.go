package services

import (
	"context"
	"fmt"

	"fleet-rental/internal/entities"
	"fleet-rental/pkg/types"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// AlertDigest periodically turns the current alerts into notifications.
type AlertDigest struct {
	stats    StatsServiceInterface
	notifier Notifier
	logger   *zap.Logger
}

func NewAlertDigest(stats StatsServiceInterface, notifier Notifier, logger *zap.Logger) *AlertDigest {
	return &AlertDigest{stats: stats, notifier: notifier, logger: logger}
}

func notificationTypeFor(kind types.AlertKind) entities.NotificationType {
	if kind == types.AlertWarning {
		return entities.NotificationWarning
	}
	return entities.NotificationInfo
}

// Run sends one notification per alert and reports how many were sent.
func (d *AlertDigest) Run(ctx context.Context) (int, error) {
	alerts, err := d.stats.GetAlerts(ctx)
	if err != nil {
		return 0, fmt.Errorf("compute alerts: %w", err)
	}
	for _, a := range alerts {
		d.notifier.Notify(ctx, a.Message, notificationTypeFor(a.Kind))
	}
	return len(alerts), nil
}

// Schedule starts a cron running the digest on spec. An empty spec disables it
// and returns a nil cron.
func (d *AlertDigest) Schedule(spec string) (*cron.Cron, error) {
	if spec == "" {
		d.logger.Info("alert digest disabled")
		return nil, nil
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		sent, err := d.Run(context.Background())
		if err != nil {
			d.logger.Error("alert digest failed", zap.Error(err))
			return
		}
		d.logger.Info("alert digest sent", zap.Int("alerts", sent))
	})
	if err != nil {
		return nil, fmt.Errorf("schedule alert digest %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
