package services

import (
	"fmt"
	"testing"
	"time"

	"fleet-rental/internal/entities"
	"fleet-rental/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alertNow = time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)

func daysAgo(n int) *time.Time {
	t := alertNow.AddDate(0, 0, -n)
	return &t
}

func freshUnit(id uint64, code string, status entities.UnitStatus) entities.Unit {
	u := entities.Unit{ID: id, Code: code, Status: status}
	u.CreatedAt = alertNow.AddDate(0, 0, -1)
	return u
}

func alertsOf(alerts []types.Alert, kind types.AlertKind) []types.Alert {
	var out []types.Alert
	for _, a := range alerts {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}

func TestComputeAlerts_IdleUnits(t *testing.T) {
	idle := freshUnit(1, "E-101", entities.UnitAvailable)
	idle.LastRentalEndAt = daysAgo(40)
	recent := freshUnit(2, "E-102", entities.UnitAvailable)
	recent.LastRentalEndAt = daysAgo(20)
	neverRented := freshUnit(3, "E-103", entities.UnitAvailable)
	neverRented.CreatedAt = *daysAgo(45)
	rented := freshUnit(4, "E-104", entities.UnitRented)
	rented.LastRentalEndAt = daysAgo(90)

	alerts := ComputeAlerts(alertNow, []entities.Unit{idle, recent, neverRented, rented}, nil)

	suggestions := alertsOf(alerts, types.AlertSuggestion)
	require.Len(t, suggestions, 2)
	assert.Equal(t, uint64(1), suggestions[0].UnitID)
	assert.Contains(t, suggestions[0].Message, "E-101")
	assert.Equal(t, uint64(3), suggestions[1].UnitID)
}

func TestComputeAlerts_PreventiveOverdue(t *testing.T) {
	overdue := freshUnit(1, "C-1", entities.UnitRented)
	overdue.LastMaintenanceAt = ptrTime(alertNow.AddDate(0, -7, 0))
	overdue.MaintenanceIntervalMonths = 6

	defaulted := freshUnit(2, "C-2", entities.UnitRented)
	defaulted.LastMaintenanceAt = ptrTime(alertNow.AddDate(0, -7, 0))

	faulted := freshUnit(3, "C-3", entities.UnitFaulted)
	faulted.LastMaintenanceAt = ptrTime(alertNow.AddDate(0, -7, 0))

	longInterval := freshUnit(4, "C-4", entities.UnitRented)
	longInterval.LastMaintenanceAt = ptrTime(alertNow.AddDate(0, -7, 0))
	longInterval.MaintenanceIntervalMonths = 12

	neverServiced := freshUnit(5, "C-5", entities.UnitRented)

	alerts := ComputeAlerts(alertNow, []entities.Unit{overdue, defaulted, faulted, longInterval, neverServiced}, nil)

	warnings := alertsOf(alerts, types.AlertWarning)
	require.Len(t, warnings, 2)
	assert.Equal(t, uint64(1), warnings[0].UnitID)
	assert.Equal(t, uint64(2), warnings[1].UnitID)
}

func TestComputeAlerts_LongMaintenance(t *testing.T) {
	long := freshUnit(1, "M-1", entities.UnitMaintenance)
	long.LastMaintenanceAt = daysAgo(8)
	short := freshUnit(2, "M-2", entities.UnitMaintenance)
	short.LastMaintenanceAt = daysAgo(3)

	alerts := ComputeAlerts(alertNow, []entities.Unit{long, short}, nil)

	require.Len(t, alerts, 1)
	assert.Equal(t, types.AlertWarning, alerts[0].Kind)
	assert.Contains(t, alerts[0].Message, "M-1")
}

func TestComputeAlerts_UpcomingReturns(t *testing.T) {
	booking := func(id uint64, status entities.BookingStatus, end *time.Time) entities.BookingDetails {
		return entities.BookingDetails{
			Booking:     entities.Booking{ID: id, UnitID: id, Status: status, End: end},
			UnitCode:    fmt.Sprintf("R-%d", id),
			ProjectLead: "Durand",
		}
	}
	bookings := []entities.BookingDetails{
		booking(1, entities.BookingOngoing, ptrTime(time.Date(2024, 3, 21, 0, 0, 0, 0, time.UTC))),
		booking(2, entities.BookingOngoing, ptrTime(time.Date(2024, 3, 21, 23, 59, 0, 0, time.UTC))),
		booking(3, entities.BookingOngoing, ptrTime(time.Date(2024, 3, 22, 0, 0, 0, 0, time.UTC))),
		booking(4, entities.BookingOngoing, ptrTime(time.Date(2024, 3, 20, 18, 0, 0, 0, time.UTC))),
		booking(5, entities.BookingCompleted, ptrTime(time.Date(2024, 3, 21, 12, 0, 0, 0, time.UTC))),
		booking(6, entities.BookingOngoing, nil),
	}

	alerts := ComputeAlerts(alertNow, nil, bookings)

	require.Len(t, alerts, 2)
	assert.Equal(t, types.AlertInfo, alerts[0].Kind)
	assert.Equal(t, uint64(1), alerts[0].UnitID)
	assert.Contains(t, alerts[0].Message, "Durand")
	assert.Equal(t, uint64(2), alerts[1].UnitID)
}

func TestComputeAlerts_Order(t *testing.T) {
	maint := freshUnit(1, "M-1", entities.UnitMaintenance)
	maint.LastMaintenanceAt = daysAgo(240)
	idle := freshUnit(2, "I-1", entities.UnitAvailable)
	idle.LastRentalEndAt = daysAgo(31)
	bookings := []entities.BookingDetails{{
		Booking:  entities.Booking{ID: 9, UnitID: 3, Status: entities.BookingOngoing, End: ptrTime(time.Date(2024, 3, 21, 8, 0, 0, 0, time.UTC))},
		UnitCode: "B-1",
	}}

	alerts := ComputeAlerts(alertNow, []entities.Unit{maint, idle}, bookings)

	kinds := make([]types.AlertKind, 0, len(alerts))
	for _, a := range alerts {
		kinds = append(kinds, a.Kind)
	}
	assert.Equal(t, []types.AlertKind{types.AlertInfo, types.AlertWarning, types.AlertSuggestion, types.AlertWarning}, kinds)
}

func TestComputeAlerts_EmptyFleet(t *testing.T) {
	alerts := ComputeAlerts(alertNow, nil, nil)
	assert.NotNil(t, alerts)
	assert.Empty(t, alerts)
}
