package services

import (
	"fmt"
	"time"

	"fleet-rental/internal/entities"
	"fleet-rental/pkg/types"
)

const (
	longMaintenanceDays = 7
	idleDays            = 30
)

// ComputeAlerts derives the operational alerts from a snapshot of the fleet.
// Alerts are grouped by kind in a fixed order: upcoming returns, long
// maintenance, idle units, overdue preventive maintenance.
func ComputeAlerts(now time.Time, units []entities.Unit, bookings []entities.BookingDetails) []types.Alert {
	alerts := make([]types.Alert, 0)

	y, m, d := now.Date()
	tomorrow := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
	dayAfter := time.Date(y, m, d+2, 0, 0, 0, 0, now.Location())
	for _, b := range bookings {
		if b.Status != entities.BookingOngoing || b.End == nil {
			continue
		}
		if !b.End.Before(tomorrow) && b.End.Before(dayAfter) {
			alerts = append(alerts, types.Alert{
				Kind:    types.AlertInfo,
				Message: fmt.Sprintf("Return due tomorrow: %s (%s)", b.UnitCode, b.ProjectLead),
				UnitID:  b.UnitID,
			})
		}
	}

	longMaintenance := now.AddDate(0, 0, -longMaintenanceDays)
	for _, u := range units {
		if u.Status == entities.UnitMaintenance && u.LastMaintenanceAt != nil && u.LastMaintenanceAt.Before(longMaintenance) {
			alerts = append(alerts, types.Alert{
				Kind:    types.AlertWarning,
				Message: fmt.Sprintf("Long maintenance (>%dd): %s", longMaintenanceDays, u.Code),
				UnitID:  u.ID,
			})
		}
	}

	idleSince := now.AddDate(0, 0, -idleDays)
	for _, u := range units {
		if u.Status != entities.UnitAvailable {
			continue
		}
		lastUse := u.CreatedAt
		if u.LastRentalEndAt != nil {
			lastUse = *u.LastRentalEndAt
		}
		if lastUse.Before(idleSince) {
			alerts = append(alerts, types.Alert{
				Kind:    types.AlertSuggestion,
				Message: fmt.Sprintf("Suggestion: %s has been idle for more than %d days", u.Code, idleDays),
				UnitID:  u.ID,
			})
		}
	}

	for _, u := range units {
		if u.Status == entities.UnitFaulted || u.LastMaintenanceAt == nil {
			continue
		}
		due := u.LastMaintenanceAt.AddDate(0, u.IntervalMonths(), 0)
		if due.Before(now) {
			alerts = append(alerts, types.Alert{
				Kind:    types.AlertWarning,
				Message: fmt.Sprintf("Preventive maintenance due: %s", u.Code),
				UnitID:  u.ID,
			})
		}
	}

	return alerts
}
