package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingOngoing   BookingStatus = "ongoing"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingOngoing, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether s is a status a booking can be closed with.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

type Booking struct {
	ID          uint64          `json:"id" db:"id"`
	UnitID      uint64          `json:"unitId" db:"unit_id"`
	SiteID      uint64          `json:"siteId" db:"site_id"`
	Start       time.Time       `json:"start" db:"start_date"`
	End         *time.Time      `json:"end" db:"end_date"`
	PlannedEnd  *time.Time      `json:"plannedEnd" db:"planned_end_date"`
	RequestedAt time.Time       `json:"requestedAt" db:"requested_at"`
	TotalCost   decimal.Decimal `json:"totalCost" db:"total_cost"`
	Status      BookingStatus   `json:"status" db:"status"`
	Notes       string          `json:"notes" db:"notes"`
}

// BookingDetails is a booking joined with the unit code and site lead it refers to.
type BookingDetails struct {
	Booking
	UnitCode    string `json:"unitCode"`
	UnitFamily  string `json:"unitFamily"`
	ProjectLead string `json:"projectLead"`
	SiteAddress string `json:"siteAddress"`
}
