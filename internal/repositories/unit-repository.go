package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleet-rental/internal/entities"
	db "fleet-rental/internal/infrastructure/bd"
	apperrors "fleet-rental/pkg/errors"
	"fleet-rental/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const unitTable = "units"
const unitFields = "id, code, family, category, brand, model, serial, status, daily_rate, maintenance_interval_months, last_maintenance_at, last_rental_end_at, created_at, updated_at"

var unitFilterColumns = map[string]string{
	"status":     "status",
	"family":     "family",
	"category":   "category",
	"brand":      "brand",
	"code":       "code",
	"created_at": "created_at",
}

var unitSearchColumns = []string{"code", "brand", "model", "serial"}

// UnitStatusUpdate writes a new status; non-nil timestamps are stamped alongside it.
type UnitStatusUpdate struct {
	Status            entities.UnitStatus
	LastMaintenanceAt *time.Time
	LastRentalEndAt   *time.Time
}

type UnitRepositoryInterface interface {
	GetUnits(ctx context.Context, filter types.Filter) ([]entities.Unit, uint64, error)
	ListAllUnits(ctx context.Context) ([]entities.Unit, error)
	FindUnit(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Unit, error)
	// LockUnit takes the row lock that serializes every status-changing operation on the unit.
	LockUnit(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Unit, error)
	CreateUnit(ctx context.Context, tx pgx.Tx, unit *entities.Unit) error
	UpdateUnit(ctx context.Context, tx pgx.Tx, unit *entities.Unit) error
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uint64, update UnitStatusUpdate) error
}

type UnitRepository struct {
	storage *pgxpool.Pool
}

func NewUnitRepository(storage *pgxpool.Pool) UnitRepositoryInterface {
	return &UnitRepository{storage: storage}
}

func scanUnit(row pgx.Row) (*entities.Unit, error) {
	var u entities.Unit
	err := row.Scan(
		&u.ID, &u.Code, &u.Family, &u.Category, &u.Brand, &u.Model, &u.Serial,
		&u.Status, &u.DailyRate, &u.MaintenanceIntervalMonths,
		&u.LastMaintenanceAt, &u.LastRentalEndAt,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func collectUnits(rows pgx.Rows) ([]entities.Unit, error) {
	defer rows.Close()
	units := make([]entities.Unit, 0)
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		units = append(units, *u)
	}
	return units, rows.Err()
}

func (r *UnitRepository) GetUnits(ctx context.Context, filter types.Filter) ([]entities.Unit, uint64, error) {
	countQuery, countArgs, err := db.ApplyFilters(sq.Select("COUNT(*)").From(unitTable), filter, unitFilterColumns, unitSearchColumns).
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count units: %w", err)
	}

	query, args, err := db.ApplyListParams(sq.Select(unitFields).From(unitTable), filter, unitFilterColumns, unitSearchColumns, "code ASC").
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list units: %w", err)
	}
	units, err := collectUnits(rows)
	if err != nil {
		return nil, 0, err
	}
	return units, total, nil
}

func (r *UnitRepository) ListAllUnits(ctx context.Context) ([]entities.Unit, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY code", unitFields, unitTable)
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all units: %w", err)
	}
	return collectUnits(rows)
}

func (r *UnitRepository) FindUnit(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Unit, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", unitFields, unitTable)
	return scanUnit(pick(r.storage, tx).QueryRow(ctx, query, id))
}

func (r *UnitRepository) LockUnit(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Unit, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 FOR UPDATE", unitFields, unitTable)
	return scanUnit(pick(r.storage, tx).QueryRow(ctx, query, id))
}

func (r *UnitRepository) CreateUnit(ctx context.Context, tx pgx.Tx, unit *entities.Unit) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (code, family, category, brand, model, serial, status, daily_rate, maintenance_interval_months)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`, unitTable)

	err := pick(r.storage, tx).QueryRow(ctx, query,
		unit.Code, unit.Family, unit.Category, unit.Brand, unit.Model, unit.Serial,
		unit.Status, unit.DailyRate, unit.MaintenanceIntervalMonths,
	).Scan(&unit.ID, &unit.CreatedAt, &unit.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create unit %s: %w", unit.Code, uniqueErr(err))
	}
	return nil
}

func (r *UnitRepository) UpdateUnit(ctx context.Context, tx pgx.Tx, unit *entities.Unit) error {
	query := fmt.Sprintf(`
		UPDATE %s SET code = $2, family = $3, category = $4, brand = $5, model = $6, serial = $7,
			daily_rate = $8, maintenance_interval_months = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`, unitTable)

	err := pick(r.storage, tx).QueryRow(ctx, query,
		unit.ID, unit.Code, unit.Family, unit.Category, unit.Brand, unit.Model, unit.Serial,
		unit.DailyRate, unit.MaintenanceIntervalMonths,
	).Scan(&unit.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update unit %d: %w", unit.ID, uniqueErr(err))
	}
	return nil
}

func (r *UnitRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id uint64, update UnitStatusUpdate) error {
	builder := sq.Update(unitTable).
		Set("status", update.Status).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id})
	if update.LastMaintenanceAt != nil {
		builder = builder.Set("last_maintenance_at", *update.LastMaintenanceAt)
	}
	if update.LastRentalEndAt != nil {
		builder = builder.Set("last_rental_end_at", *update.LastRentalEndAt)
	}

	query, args, err := builder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return err
	}
	tag, err := pick(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update unit %d status: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
