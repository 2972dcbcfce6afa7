package repositories

import (
	"context"
	"fmt"

	"fleet-rental/internal/entities"
	db "fleet-rental/internal/infrastructure/bd"
	"fleet-rental/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var maintenanceFilterColumns = map[string]string{
	"unit_id": "m.unit_id",
	"kind":    "m.kind",
	"family":  "u.family",
	"date":    "m.date",
	"cost":    "m.cost",
}

type MaintenanceRepositoryInterface interface {
	GetMaintenance(ctx context.Context, filter types.Filter) ([]entities.MaintenanceDetails, uint64, error)
	CreateMaintenance(ctx context.Context, tx pgx.Tx, event *entities.Maintenance) error
}

type MaintenanceRepository struct {
	storage *pgxpool.Pool
}

func NewMaintenanceRepository(storage *pgxpool.Pool) MaintenanceRepositoryInterface {
	return &MaintenanceRepository{storage: storage}
}

func maintenanceQuery(columns ...string) sq.SelectBuilder {
	return sq.Select(columns...).
		From("maintenance_events m").
		Join("units u ON u.id = m.unit_id")
}

func (r *MaintenanceRepository) GetMaintenance(ctx context.Context, filter types.Filter) ([]entities.MaintenanceDetails, uint64, error) {
	search := []string{"u.code", "m.technician", "m.notes"}

	countQuery, countArgs, err := db.ApplyFilters(maintenanceQuery("COUNT(*)"), filter, maintenanceFilterColumns, search).
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count maintenance: %w", err)
	}

	query, args, err := db.ApplyListParams(
		maintenanceQuery("m.id", "m.unit_id", "m.date", "m.kind", "m.technician", "m.cost", "m.notes", "m.created_at", "u.code", "u.family"),
		filter, maintenanceFilterColumns, search, "m.date DESC", "m.id DESC").
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list maintenance: %w", err)
	}
	defer rows.Close()

	events := make([]entities.MaintenanceDetails, 0)
	for rows.Next() {
		var m entities.MaintenanceDetails
		if err := rows.Scan(&m.ID, &m.UnitID, &m.Date, &m.Kind, &m.Technician, &m.Cost, &m.Notes, &m.CreatedAt, &m.UnitCode, &m.UnitFamily); err != nil {
			return nil, 0, err
		}
		events = append(events, m)
	}
	return events, total, rows.Err()
}

func (r *MaintenanceRepository) CreateMaintenance(ctx context.Context, tx pgx.Tx, event *entities.Maintenance) error {
	query := `
		INSERT INTO maintenance_events (unit_id, date, kind, technician, cost, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	return pick(r.storage, tx).QueryRow(ctx, query,
		event.UnitID, event.Date, event.Kind, event.Technician, event.Cost, event.Notes,
	).Scan(&event.ID, &event.CreatedAt)
}
