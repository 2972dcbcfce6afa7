package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type MaintenanceKind string

const (
	MaintenancePreventive      MaintenanceKind = "preventive"
	MaintenanceCorrective      MaintenanceKind = "corrective"
	MaintenanceOverhaul        MaintenanceKind = "overhaul"
	MaintenancePartReplacement MaintenanceKind = "part_replacement"
	MaintenanceEmergency       MaintenanceKind = "emergency"
)

var MaintenanceKinds = []MaintenanceKind{
	MaintenancePreventive,
	MaintenanceCorrective,
	MaintenanceOverhaul,
	MaintenancePartReplacement,
	MaintenanceEmergency,
}

func (k MaintenanceKind) IsValid() bool {
	for _, known := range MaintenanceKinds {
		if k == known {
			return true
		}
	}
	return false
}

// NormalizeMaintenanceKind lowercases and maps "Part Replacement" style input onto the enum.
func NormalizeMaintenanceKind(s string) MaintenanceKind {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return MaintenanceKind(s)
}

type Maintenance struct {
	ID         uint64          `json:"id" db:"id"`
	UnitID     uint64          `json:"unitId" db:"unit_id"`
	Date       time.Time       `json:"date" db:"date"`
	Kind       MaintenanceKind `json:"kind" db:"kind"`
	Technician string          `json:"technician" db:"technician"`
	Cost       decimal.Decimal `json:"cost" db:"cost"`
	Notes      string          `json:"notes" db:"notes"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`
}

type MaintenanceDetails struct {
	Maintenance
	UnitCode   string `json:"unitCode"`
	UnitFamily string `json:"unitFamily"`
}
