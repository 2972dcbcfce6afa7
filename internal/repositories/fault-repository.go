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

const faultFields = "id, unit_id, description, severity, reported_at, status, resolved_at"

var faultFilterColumns = map[string]string{
	"unit_id":     "f.unit_id",
	"severity":    "f.severity",
	"status":      "f.status",
	"reported_at": "f.reported_at",
}

type FaultRepositoryInterface interface {
	GetFaults(ctx context.Context, filter types.Filter) ([]entities.FaultDetails, uint64, error)
	LockFault(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Fault, error)
	CreateFault(ctx context.Context, tx pgx.Tx, fault *entities.Fault) error
	ResolveFault(ctx context.Context, tx pgx.Tx, id uint64, resolvedAt time.Time) error
}

type FaultRepository struct {
	storage *pgxpool.Pool
}

func NewFaultRepository(storage *pgxpool.Pool) FaultRepositoryInterface {
	return &FaultRepository{storage: storage}
}

func faultQuery(columns ...string) sq.SelectBuilder {
	return sq.Select(columns...).
		From("faults f").
		Join("units u ON u.id = f.unit_id")
}

func (r *FaultRepository) GetFaults(ctx context.Context, filter types.Filter) ([]entities.FaultDetails, uint64, error) {
	search := []string{"u.code", "f.description"}

	countQuery, countArgs, err := db.ApplyFilters(faultQuery("COUNT(*)"), filter, faultFilterColumns, search).
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count faults: %w", err)
	}

	query, args, err := db.ApplyListParams(
		faultQuery("f.id", "f.unit_id", "f.description", "f.severity", "f.reported_at", "f.status", "f.resolved_at", "u.code"),
		filter, faultFilterColumns, search, "f.reported_at DESC", "f.id DESC").
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list faults: %w", err)
	}
	defer rows.Close()

	faults := make([]entities.FaultDetails, 0)
	for rows.Next() {
		var f entities.FaultDetails
		if err := rows.Scan(&f.ID, &f.UnitID, &f.Description, &f.Severity, &f.ReportedAt, &f.Status, &f.ResolvedAt, &f.UnitCode); err != nil {
			return nil, 0, err
		}
		faults = append(faults, f)
	}
	return faults, total, rows.Err()
}

func (r *FaultRepository) LockFault(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Fault, error) {
	query := fmt.Sprintf("SELECT %s FROM faults WHERE id = $1 FOR UPDATE", faultFields)

	var f entities.Fault
	err := pick(r.storage, tx).QueryRow(ctx, query, id).Scan(
		&f.ID, &f.UnitID, &f.Description, &f.Severity, &f.ReportedAt, &f.Status, &f.ResolvedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *FaultRepository) CreateFault(ctx context.Context, tx pgx.Tx, fault *entities.Fault) error {
	query := `
		INSERT INTO faults (unit_id, description, severity, reported_at, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	return pick(r.storage, tx).QueryRow(ctx, query,
		fault.UnitID, fault.Description, fault.Severity, fault.ReportedAt, fault.Status,
	).Scan(&fault.ID)
}

func (r *FaultRepository) ResolveFault(ctx context.Context, tx pgx.Tx, id uint64, resolvedAt time.Time) error {
	tag, err := pick(r.storage, tx).Exec(ctx,
		"UPDATE faults SET status = $2, resolved_at = $3 WHERE id = $1",
		id, entities.FaultResolved, resolvedAt,
	)
	if err != nil {
		return fmt.Errorf("resolve fault %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
