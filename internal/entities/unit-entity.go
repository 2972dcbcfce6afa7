package entities

import (
	"time"

	"fleet-rental/pkg/types"

	"github.com/shopspring/decimal"
)

type UnitStatus string

const (
	UnitAvailable   UnitStatus = "available"
	UnitRented      UnitStatus = "rented"
	UnitMaintenance UnitStatus = "maintenance"
	UnitFaulted     UnitStatus = "faulted"
)

func (s UnitStatus) IsValid() bool {
	switch s {
	case UnitAvailable, UnitRented, UnitMaintenance, UnitFaulted:
		return true
	}
	return false
}

const DefaultMaintenanceIntervalMonths = 6

type Unit struct {
	ID                        uint64          `json:"id" db:"id"`
	Code                      string          `json:"code" db:"code"`
	Family                    string          `json:"family" db:"family"`
	Category                  string          `json:"category" db:"category"`
	Brand                     string          `json:"brand" db:"brand"`
	Model                     string          `json:"model" db:"model"`
	Serial                    string          `json:"serial" db:"serial"`
	Status                    UnitStatus      `json:"status" db:"status"`
	DailyRate                 decimal.Decimal `json:"dailyRate" db:"daily_rate"`
	MaintenanceIntervalMonths int             `json:"maintenanceIntervalMonths" db:"maintenance_interval_months"`
	LastMaintenanceAt         *time.Time      `json:"lastMaintenanceAt" db:"last_maintenance_at"`
	LastRentalEndAt           *time.Time      `json:"lastRentalEndAt" db:"last_rental_end_at"`

	types.BaseEntity
}

// IntervalMonths falls back to the fleet default when the unit has none recorded.
func (u Unit) IntervalMonths() int {
	if u.MaintenanceIntervalMonths <= 0 {
		return DefaultMaintenanceIntervalMonths
	}
	return u.MaintenanceIntervalMonths
}
