package services

import (
	"context"
	"errors"
	"testing"

	"fleet-rental/internal/dto"
	"fleet-rental/internal/entities"
	"fleet-rental/internal/repositories"
	"fleet-rental/pkg/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	crane := f.store.addUnit(entities.Unit{Code: "G-1", Family: "crane", DailyRate: decimal.NewFromInt(500)})
	truck := f.store.addUnit(entities.Unit{Code: "T-1", Family: "truck", DailyRate: decimal.NewFromInt(100)})
	f.store.addUnit(entities.Unit{Code: "T-2", Family: "truck", DailyRate: decimal.NewFromInt(100)})
	site := f.store.addSite(entities.Site{ProjectLead: "Durand", Address: "Lyon"})

	_, err := f.bookings().RequestBooking(ctx, "admin", dto.CreateBookingDTO{
		UnitID: crane.ID, SiteID: site.ID, Start: types.NewDate(date(2024, 3, 1)), End: datePtr(2024, 3, 5),
	})
	require.NoError(t, err)
	cancelled, err := f.bookings().RequestBooking(ctx, "admin", dto.CreateBookingDTO{
		UnitID: truck.ID, SiteID: site.ID, Start: types.NewDate(date(2024, 3, 1)), End: datePtr(2024, 3, 2),
	})
	require.NoError(t, err)
	_, err = f.bookings().CloseBooking(ctx, "admin", cancelled.ID, entities.BookingCancelled)
	require.NoError(t, err)
	_, err = f.maintenance().LogMaintenance(ctx, "tech", dto.CreateMaintenanceDTO{UnitID: truck.ID, Kind: "preventive"})
	require.NoError(t, err)
	_, err = f.maintenance().LogMaintenance(ctx, "tech", dto.CreateMaintenanceDTO{UnitID: truck.ID, Kind: "corrective"})
	require.NoError(t, err)

	stats, err := f.stats().GetStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, types.UnitCounts{Total: 3, Available: 1, Rented: 1, Maintenance: 1}, stats.UnitCounts)
	assert.True(t, stats.TotalRevenue.Equal(decimal.NewFromInt(2500)), "cancelled bookings earn nothing")
	assert.True(t, stats.TotalMaintCost.Equal(decimal.NewFromInt(2100)))
	require.Len(t, stats.MaintByFamily, 1)
	assert.Equal(t, "truck", stats.MaintByFamily[0].Family)
	assert.NotNil(t, stats.Alerts)
}

type failingStats struct{ *memStore }

func (failingStats) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	return decimal.Zero, errors.New("connection reset")
}

func TestGetStats_PropagatesQueryFailure(t *testing.T) {
	f := newFixture(t)
	svc := NewStatsService(f.tx, failingStats{f.store}, f.store, f.store, zap.NewNop())

	_, err := svc.GetStats(context.Background())
	assert.EqualError(t, err, "connection reset")
}

func TestAlertDigest_Run(t *testing.T) {
	f := newFixture(t)
	unit := f.store.addUnit(entities.Unit{Code: "E-101", Family: "excavator"})
	stale := f.clock.AddDate(0, -8, 0)
	require.NoError(t, f.store.UpdateStatus(context.Background(), nil, unit.ID,
		repositories.UnitStatusUpdate{Status: entities.UnitRented, LastMaintenanceAt: &stale}))

	digest := NewAlertDigest(f.stats(), f.notifier, zap.NewNop())
	sent, err := digest.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	msgs := f.notifier.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, entities.NotificationWarning, msgs[0].Kind)
	assert.Contains(t, msgs[0].Message, "E-101")
}

func TestAlertDigest_Schedule(t *testing.T) {
	f := newFixture(t)
	digest := NewAlertDigest(f.stats(), f.notifier, zap.NewNop())

	c, err := digest.Schedule("")
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = digest.Schedule("not a cron spec")
	assert.Error(t, err)

	c, err = digest.Schedule("@every 1h")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Len(t, c.Entries(), 1)
	c.Stop()
}

func TestNotificationTypeFor(t *testing.T) {
	assert.Equal(t, entities.NotificationWarning, notificationTypeFor(types.AlertWarning))
	assert.Equal(t, entities.NotificationInfo, notificationTypeFor(types.AlertSuggestion))
	assert.Equal(t, entities.NotificationInfo, notificationTypeFor(types.AlertInfo))
}
