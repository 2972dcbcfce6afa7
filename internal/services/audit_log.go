package services

import (
	"context"

	"fleet-rental/internal/entities"
	"fleet-rental/internal/repositories"
)

type AuditLogServiceInterface interface {
	GetLogs(ctx context.Context) ([]entities.AuditLog, error)
}

type AuditLogService struct {
	txManager repositories.TxManagerInterface
	repo      repositories.AuditLogRepositoryInterface
}

func NewAuditLogService(txManager repositories.TxManagerInterface, repo repositories.AuditLogRepositoryInterface) AuditLogServiceInterface {
	return &AuditLogService{txManager: txManager, repo: repo}
}

// GetLogs returns the newest entries first.
func (s *AuditLogService) GetLogs(ctx context.Context) ([]entities.AuditLog, error) {
	var logs []entities.AuditLog
	err := s.txManager.RunQuery(ctx, func(ctx context.Context) error {
		var err error
		logs, err = s.repo.GetLatestLogs(ctx, repositories.MaxAuditLogs)
		return err
	})
	return logs, err
}
