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

const bookingTable = "bookings"
const bookingFields = "id, unit_id, site_id, start_date, end_date, planned_end_date, requested_at, total_cost, status, notes"

var bookingDetailFields = []string{
	"b.id", "b.unit_id", "b.site_id", "b.start_date", "b.end_date", "b.planned_end_date",
	"b.requested_at", "b.total_cost", "b.status", "b.notes",
	"u.code", "u.family", "s.project_lead", "s.address",
}

var bookingFilterColumns = map[string]string{
	"status":       "b.status",
	"unit_id":      "b.unit_id",
	"site_id":      "b.site_id",
	"start":        "b.start_date",
	"end":          "b.end_date",
	"requested_at": "b.requested_at",
	"total_cost":   "b.total_cost",
}

var bookingSearchColumns = []string{"u.code", "s.project_lead", "b.notes"}

type BookingRepositoryInterface interface {
	GetBookings(ctx context.Context, filter types.Filter) ([]entities.BookingDetails, uint64, error)
	ListOngoingBookings(ctx context.Context) ([]entities.BookingDetails, error)
	// LockBooking loads the booking FOR UPDATE.
	LockBooking(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Booking, error)
	// HasOverlap reports an ongoing booking of the unit whose closed interval
	// intersects [start, end]; a booking without end spans its start day only.
	HasOverlap(ctx context.Context, tx pgx.Tx, unitID uint64, start, end time.Time) (bool, error)
	CreateBooking(ctx context.Context, tx pgx.Tx, booking *entities.Booking) error
	CloseBooking(ctx context.Context, tx pgx.Tx, booking *entities.Booking) error
}

type BookingRepository struct {
	storage *pgxpool.Pool
}

func NewBookingRepository(storage *pgxpool.Pool) BookingRepositoryInterface {
	return &BookingRepository{storage: storage}
}

func bookingDetailsQuery(columns ...string) sq.SelectBuilder {
	return sq.Select(columns...).
		From("bookings b").
		Join("units u ON u.id = b.unit_id").
		Join("sites s ON s.id = b.site_id")
}

func scanBookingDetails(rows pgx.Rows) ([]entities.BookingDetails, error) {
	defer rows.Close()
	out := make([]entities.BookingDetails, 0)
	for rows.Next() {
		var d entities.BookingDetails
		if err := rows.Scan(
			&d.ID, &d.UnitID, &d.SiteID, &d.Start, &d.End, &d.PlannedEnd,
			&d.RequestedAt, &d.TotalCost, &d.Status, &d.Notes,
			&d.UnitCode, &d.UnitFamily, &d.ProjectLead, &d.SiteAddress,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *BookingRepository) GetBookings(ctx context.Context, filter types.Filter) ([]entities.BookingDetails, uint64, error) {
	countQuery, countArgs, err := db.ApplyFilters(bookingDetailsQuery("COUNT(*)"), filter, bookingFilterColumns, bookingSearchColumns).
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}

	query, args, err := db.ApplyListParams(bookingDetailsQuery(bookingDetailFields...), filter, bookingFilterColumns, bookingSearchColumns,
		"b.requested_at DESC", "b.id DESC").
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	bookings, err := scanBookingDetails(rows)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *BookingRepository) ListOngoingBookings(ctx context.Context) ([]entities.BookingDetails, error) {
	query, args, err := bookingDetailsQuery(bookingDetailFields...).
		Where(sq.Eq{"b.status": entities.BookingOngoing}).
		OrderBy("b.start_date ASC", "b.id ASC").
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ongoing bookings: %w", err)
	}
	return scanBookingDetails(rows)
}

func (r *BookingRepository) LockBooking(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Booking, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 FOR UPDATE", bookingFields, bookingTable)

	var b entities.Booking
	err := pick(r.storage, tx).QueryRow(ctx, query, id).Scan(
		&b.ID, &b.UnitID, &b.SiteID, &b.Start, &b.End, &b.PlannedEnd,
		&b.RequestedAt, &b.TotalCost, &b.Status, &b.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) HasOverlap(ctx context.Context, tx pgx.Tx, unitID uint64, start, end time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE unit_id = $1
				AND status = $2
				AND start_date <= $4
				AND COALESCE(end_date, start_date) >= $3
		)`

	var exists bool
	err := pick(r.storage, tx).QueryRow(ctx, query, unitID, entities.BookingOngoing, start, end).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check overlap for unit %d: %w", unitID, err)
	}
	return exists, nil
}

func (r *BookingRepository) CreateBooking(ctx context.Context, tx pgx.Tx, booking *entities.Booking) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (unit_id, site_id, start_date, end_date, planned_end_date, requested_at, total_cost, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`, bookingTable)

	return pick(r.storage, tx).QueryRow(ctx, query,
		booking.UnitID, booking.SiteID, booking.Start, booking.End, booking.PlannedEnd,
		booking.RequestedAt, booking.TotalCost, booking.Status, booking.Notes,
	).Scan(&booking.ID)
}

func (r *BookingRepository) CloseBooking(ctx context.Context, tx pgx.Tx, booking *entities.Booking) error {
	query := fmt.Sprintf(`
		UPDATE %s SET status = $2, end_date = $3, planned_end_date = $4, total_cost = $5
		WHERE id = $1`, bookingTable)

	tag, err := pick(r.storage, tx).Exec(ctx, query,
		booking.ID, booking.Status, booking.End, booking.PlannedEnd, booking.TotalCost,
	)
	if err != nil {
		return fmt.Errorf("close booking %d: %w", booking.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
