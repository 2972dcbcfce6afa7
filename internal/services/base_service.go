package services

import (
	"context"
	"fmt"
	"time"

	"fleet-rental/internal/entities"
	"fleet-rental/internal/repositories"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Notifier emits fire-and-forget messages. Implementations must not block
// the caller and never report delivery failures.
type Notifier interface {
	Notify(ctx context.Context, message string, kind entities.NotificationType)
}

// BaseService carries what every mutating fleet service shares: the
// transaction manager, the audit trail, the notifier and the clock.
type BaseService struct {
	txManager repositories.TxManagerInterface
	auditRepo repositories.AuditLogRepositoryInterface
	notifier  Notifier
	logger    *zap.Logger
	now       func() time.Time
}

func NewBaseService(
	txManager repositories.TxManagerInterface,
	auditRepo repositories.AuditLogRepositoryInterface,
	notifier Notifier,
	logger *zap.Logger,
) *BaseService {
	return &BaseService{
		txManager: txManager,
		auditRepo: auditRepo,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *BaseService) audit(ctx context.Context, tx pgx.Tx, actor, action, description string) error {
	entry := &entities.AuditLog{Actor: actor, Action: action, Description: description}
	if err := s.auditRepo.CreateLog(ctx, tx, entry); err != nil {
		return fmt.Errorf("write audit log %q: %w", action, err)
	}
	return nil
}

// notify runs after commit on a context detached from the request.
func (s *BaseService) notify(ctx context.Context, kind entities.NotificationType, format string, args ...interface{}) {
	s.notifier.Notify(context.WithoutCancel(ctx), fmt.Sprintf(format, args...), kind)
}
