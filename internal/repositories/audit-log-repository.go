package repositories

import (
	"context"
	"fmt"

	"fleet-rental/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const MaxAuditLogs = 100

type AuditLogRepositoryInterface interface {
	CreateLog(ctx context.Context, tx pgx.Tx, entry *entities.AuditLog) error
	GetLatestLogs(ctx context.Context, limit int) ([]entities.AuditLog, error)
}

type AuditLogRepository struct {
	storage *pgxpool.Pool
}

func NewAuditLogRepository(storage *pgxpool.Pool) AuditLogRepositoryInterface {
	return &AuditLogRepository{storage: storage}
}

func (r *AuditLogRepository) CreateLog(ctx context.Context, tx pgx.Tx, entry *entities.AuditLog) error {
	query := `
		INSERT INTO audit_logs (actor, action, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	return pick(r.storage, tx).QueryRow(ctx, query, entry.Actor, entry.Action, entry.Description).
		Scan(&entry.ID, &entry.CreatedAt)
}

func (r *AuditLogRepository) GetLatestLogs(ctx context.Context, limit int) ([]entities.AuditLog, error) {
	if limit <= 0 || limit > MaxAuditLogs {
		limit = MaxAuditLogs
	}

	rows, err := r.storage.Query(ctx,
		"SELECT id, actor, action, description, created_at FROM audit_logs ORDER BY created_at DESC, id DESC LIMIT $1",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	logs := make([]entities.AuditLog, 0)
	for rows.Next() {
		var l entities.AuditLog
		if err := rows.Scan(&l.ID, &l.Actor, &l.Action, &l.Description, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
