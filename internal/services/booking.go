package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleet-rental/internal/dto"
	"fleet-rental/internal/entities"
	"fleet-rental/internal/repositories"
	apperrors "fleet-rental/pkg/errors"
	"fleet-rental/pkg/types"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type BookingServiceInterface interface {
	RequestBooking(ctx context.Context, actor string, req dto.CreateBookingDTO) (*entities.Booking, error)
	CloseBooking(ctx context.Context, actor string, id uint64, status entities.BookingStatus) (*entities.Booking, error)
	GetBookings(ctx context.Context, filter types.Filter) ([]entities.BookingDetails, uint64, error)
}

type BookingService struct {
	*BaseService
	unitRepo    repositories.UnitRepositoryInterface
	siteRepo    repositories.SiteRepositoryInterface
	bookingRepo repositories.BookingRepositoryInterface
}

func NewBookingService(
	base *BaseService,
	unitRepo repositories.UnitRepositoryInterface,
	siteRepo repositories.SiteRepositoryInterface,
	bookingRepo repositories.BookingRepositoryInterface,
) BookingServiceInterface {
	return &BookingService{
		BaseService: base,
		unitRepo:    unitRepo,
		siteRepo:    siteRepo,
		bookingRepo: bookingRepo,
	}
}

const day = 24 * time.Hour

// rentalDays counts the calendar days covered by [start, end], both included.
// Midnight-aligned ranges are counted on the calendar of start's zone; anything
// else is ceil(span / 24h) + 1.
func rentalDays(start, end time.Time) int64 {
	if end.Before(start) {
		start, end = end, start
	}
	if local := end.In(start.Location()); isMidnight(start) && isMidnight(local) {
		sy, sm, sd := start.Date()
		ey, em, ed := local.Date()
		span := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC).Sub(time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC))
		return int64(span/day) + 1
	}
	span := end.Sub(start)
	days := int64(span / day)
	if span%day != 0 {
		days++
	}
	return days + 1
}

func isMidnight(t time.Time) bool {
	h, m, s := t.Clock()
	return h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0
}

// BookingCost prices a booking at the daily rate for every day it covers.
// Open-ended bookings cost nothing until they are closed.
func BookingCost(dailyRate decimal.Decimal, start time.Time, end *time.Time) decimal.Decimal {
	if end == nil {
		return decimal.Zero
	}
	return dailyRate.Mul(decimal.NewFromInt(rentalDays(start, *end)))
}

func (s *BookingService) RequestBooking(ctx context.Context, actor string, req dto.CreateBookingDTO) (*entities.Booking, error) {
	if req.Start.IsZero() {
		return nil, apperrors.NewInvalidInputError("start date is required")
	}
	start := req.Start.Time
	end := req.End.Ptr()
	if end != nil && !end.After(start) {
		return nil, apperrors.ErrInvalidRange
	}
	queryEnd := start
	if end != nil {
		queryEnd = *end
	}

	var booking *entities.Booking
	var unit *entities.Unit
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		unit, err = s.unitRepo.LockUnit(ctx, tx, req.UnitID)
		if err != nil {
			return fmt.Errorf("unit %d: %w", req.UnitID, err)
		}
		if _, err := s.siteRepo.FindSite(ctx, tx, req.SiteID); err != nil {
			return fmt.Errorf("site %d: %w", req.SiteID, err)
		}

		overlap, err := s.bookingRepo.HasOverlap(ctx, tx, unit.ID, start, queryEnd)
		if err != nil {
			return err
		}
		if overlap {
			return apperrors.ErrConflict
		}

		booking = &entities.Booking{
			UnitID:      unit.ID,
			SiteID:      req.SiteID,
			Start:       start,
			End:         end,
			PlannedEnd:  end,
			RequestedAt: s.now(),
			TotalCost:   BookingCost(unit.DailyRate, start, end),
			Status:      entities.BookingOngoing,
			Notes:       req.Notes,
		}
		if err := s.bookingRepo.CreateBooking(ctx, tx, booking); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}

		next := NextUnitStatus(unit.Status, EventBookingStarted)
		if err := s.unitRepo.UpdateStatus(ctx, tx, unit.ID, repositories.UnitStatusUpdate{Status: next}); err != nil {
			return err
		}
		return s.audit(ctx, tx, actor, "booking.create",
			fmt.Sprintf("Booking #%d: unit %s for site #%d", booking.ID, unit.Code, booking.SiteID))
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Error("request booking failed", zap.Uint64("unit_id", req.UnitID), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("booking created",
		zap.Uint64("booking_id", booking.ID),
		zap.String("unit", unit.Code),
		zap.String("actor", actor),
	)
	s.notify(ctx, entities.NotificationSuccess, "Unit %s booked for site #%d", unit.Code, booking.SiteID)
	return booking, nil
}

// CloseBooking ends an ongoing booking. Completing it stamps the real end
// (the requested end stays in PlannedEnd) and prices open-ended bookings
// from that real end.
func (s *BookingService) CloseBooking(ctx context.Context, actor string, id uint64, status entities.BookingStatus) (*entities.Booking, error) {
	if !status.IsTerminal() {
		return nil, apperrors.NewInvalidInputError("status must be %q or %q", entities.BookingCompleted, entities.BookingCancelled)
	}

	var booking *entities.Booking
	var unit *entities.Unit
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		booking, err = s.bookingRepo.LockBooking(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("booking %d: %w", id, err)
		}
		if booking.Status != entities.BookingOngoing {
			return apperrors.NewInvalidInputError("booking %d is already %s", id, booking.Status)
		}
		unit, err = s.unitRepo.LockUnit(ctx, tx, booking.UnitID)
		if err != nil {
			return fmt.Errorf("unit %d: %w", booking.UnitID, err)
		}

		now := s.now()
		if status == entities.BookingCompleted {
			if booking.PlannedEnd == nil {
				booking.TotalCost = BookingCost(unit.DailyRate, booking.Start, &now)
			}
			booking.End = &now
		}
		booking.Status = status
		if err := s.bookingRepo.CloseBooking(ctx, tx, booking); err != nil {
			return err
		}

		update := repositories.UnitStatusUpdate{
			Status:          NextUnitStatus(unit.Status, EventBookingClosed),
			LastRentalEndAt: &now,
		}
		if err := s.unitRepo.UpdateStatus(ctx, tx, unit.ID, update); err != nil {
			return err
		}
		return s.audit(ctx, tx, actor, "booking.close",
			fmt.Sprintf("Booking #%d %s, unit %s released", booking.ID, status, unit.Code))
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, entities.NotificationInfo, "Booking #%d %s, unit %s is available", booking.ID, status, unit.Code)
	return booking, nil
}

func (s *BookingService) GetBookings(ctx context.Context, filter types.Filter) ([]entities.BookingDetails, uint64, error) {
	var bookings []entities.BookingDetails
	var total uint64
	err := s.txManager.RunQuery(ctx, func(ctx context.Context) error {
		var err error
		bookings, total, err = s.bookingRepo.GetBookings(ctx, filter)
		return err
	})
	return bookings, total, err
}
