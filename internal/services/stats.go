package services

import (
	"context"
	"sync"
	"time"

	"fleet-rental/internal/entities"
	"fleet-rental/internal/repositories"
	"fleet-rental/pkg/types"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type StatsServiceInterface interface {
	GetStats(ctx context.Context) (*types.FleetStats, error)
	GetAlerts(ctx context.Context) ([]types.Alert, error)
}

type StatsService struct {
	txManager   repositories.TxManagerInterface
	statsRepo   repositories.StatsRepositoryInterface
	unitRepo    repositories.UnitRepositoryInterface
	bookingRepo repositories.BookingRepositoryInterface
	logger      *zap.Logger
	now         func() time.Time
}

func NewStatsService(
	txManager repositories.TxManagerInterface,
	statsRepo repositories.StatsRepositoryInterface,
	unitRepo repositories.UnitRepositoryInterface,
	bookingRepo repositories.BookingRepositoryInterface,
	logger *zap.Logger,
) StatsServiceInterface {
	return &StatsService{
		txManager:   txManager,
		statsRepo:   statsRepo,
		unitRepo:    unitRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// GetStats runs the aggregate queries concurrently; the first failure wins.
func (s *StatsService) GetStats(ctx context.Context) (*types.FleetStats, error) {
	stats := &types.FleetStats{}
	err := s.txManager.RunQuery(ctx, func(ctx context.Context) error {
		var (
			wg       sync.WaitGroup
			counts   *types.UnitCounts
			revenue  decimal.Decimal
			maint    decimal.Decimal
			byFamily []types.FamilyCost
			units    []entities.Unit
			bookings []entities.BookingDetails

			errs []error
			mu   sync.Mutex
		)

		addTask := func(fn func() error) {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := fn(); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			}()
		}

		addTask(func() (err error) { counts, err = s.statsRepo.CountUnitsByStatus(ctx); return })
		addTask(func() (err error) { revenue, err = s.statsRepo.TotalRevenue(ctx); return })
		addTask(func() (err error) { maint, err = s.statsRepo.TotalMaintenanceCost(ctx); return })
		addTask(func() (err error) { byFamily, err = s.statsRepo.MaintenanceCostByFamily(ctx); return })
		addTask(func() (err error) { units, err = s.unitRepo.ListAllUnits(ctx); return })
		addTask(func() (err error) { bookings, err = s.bookingRepo.ListOngoingBookings(ctx); return })

		wg.Wait()

		if len(errs) > 0 {
			s.logger.Error("fleet stats query failed", zap.Int("failed", len(errs)), zap.Error(errs[0]))
			return errs[0]
		}

		stats.UnitCounts = *counts
		stats.TotalRevenue = revenue
		stats.TotalMaintCost = maint
		stats.MaintByFamily = byFamily
		stats.Alerts = ComputeAlerts(s.now(), units, bookings)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if stats.MaintByFamily == nil {
		stats.MaintByFamily = []types.FamilyCost{}
	}
	return stats, nil
}

func (s *StatsService) GetAlerts(ctx context.Context) ([]types.Alert, error) {
	var alerts []types.Alert
	err := s.txManager.RunQuery(ctx, func(ctx context.Context) error {
		units, err := s.unitRepo.ListAllUnits(ctx)
		if err != nil {
			return err
		}
		bookings, err := s.bookingRepo.ListOngoingBookings(ctx)
		if err != nil {
			return err
		}
		alerts = ComputeAlerts(s.now(), units, bookings)
		return nil
	})
	return alerts, err
}
