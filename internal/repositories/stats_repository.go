package repositories

import (
	"context"

	"fleet-rental/internal/entities"
	"fleet-rental/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type StatsRepositoryInterface interface {
	CountUnitsByStatus(ctx context.Context) (*types.UnitCounts, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	TotalMaintenanceCost(ctx context.Context) (decimal.Decimal, error)
	MaintenanceCostByFamily(ctx context.Context) ([]types.FamilyCost, error)
}

type StatsRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewStatsRepository(storage *pgxpool.Pool, logger *zap.Logger) StatsRepositoryInterface {
	return &StatsRepository{storage: storage, logger: logger}
}

func (r *StatsRepository) CountUnitsByStatus(ctx context.Context) (*types.UnitCounts, error) {
	query, args, err := sq.Select("status", "COUNT(*)").
		From("units").
		GroupBy("status").
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := &types.UnitCounts{}
	for rows.Next() {
		var status entities.UnitStatus
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts.Total += n
		switch status {
		case entities.UnitAvailable:
			counts.Available = n
		case entities.UnitRented:
			counts.Rented = n
		case entities.UnitMaintenance:
			counts.Maintenance = n
		case entities.UnitFaulted:
			counts.Faulted = n
		default:
			r.logger.Warn("unit with unknown status", zap.String("status", string(status)))
		}
	}
	return counts, rows.Err()
}

func (r *StatsRepository) sum(ctx context.Context, b sq.SelectBuilder) (decimal.Decimal, error) {
	query, args, err := b.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return decimal.Zero, err
	}
	var total decimal.Decimal
	err = r.storage.QueryRow(ctx, query, args...).Scan(&total)
	return total, err
}

// TotalRevenue sums every booking that was not cancelled.
func (r *StatsRepository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, sq.Select("COALESCE(SUM(total_cost), 0)").
		From("bookings").
		Where(sq.NotEq{"status": entities.BookingCancelled}))
}

func (r *StatsRepository) TotalMaintenanceCost(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, sq.Select("COALESCE(SUM(cost), 0)").From("maintenance_events"))
}

func (r *StatsRepository) MaintenanceCostByFamily(ctx context.Context) ([]types.FamilyCost, error) {
	query, args, err := sq.Select("u.family", "COALESCE(SUM(m.cost), 0)").
		From("maintenance_events m").
		Join("units u ON u.id = m.unit_id").
		GroupBy("u.family").
		OrderBy("u.family").
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]types.FamilyCost, 0)
	for rows.Next() {
		var fc types.FamilyCost
		if err := rows.Scan(&fc.Family, &fc.Total); err != nil {
			return nil, err
		}
		result = append(result, fc)
	}
	return result, rows.Err()
}
