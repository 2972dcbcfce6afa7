package dto

import (
	"github.com/aarondl/null/v8"
	"github.com/shopspring/decimal"
)

type CreateUnitDTO struct {
	Code                      string          `json:"code" validate:"required,max=64"`
	Family                    string          `json:"family" validate:"required,max=64"`
	Category                  string          `json:"category" validate:"max=128"`
	Brand                     string          `json:"brand" validate:"max=128"`
	Model                     string          `json:"model" validate:"max=128"`
	Serial                    string          `json:"serial" validate:"required,max=128"`
	DailyRate                 decimal.Decimal `json:"dailyRate"`
	MaintenanceIntervalMonths int             `json:"maintenanceIntervalMonths" validate:"gte=0,lte=120"`
}

// UpdateUnitDTO is a partial update; status is only changed through bookings,
// maintenance and faults.
type UpdateUnitDTO struct {
	Code                      null.String         `json:"code" validate:"omitempty,max=64"`
	Family                    null.String         `json:"family" validate:"omitempty,max=64"`
	Category                  null.String         `json:"category" validate:"omitempty,max=128"`
	Brand                     null.String         `json:"brand" validate:"omitempty,max=128"`
	Model                     null.String         `json:"model" validate:"omitempty,max=128"`
	Serial                    null.String         `json:"serial" validate:"omitempty,max=128"`
	DailyRate                 decimal.NullDecimal `json:"dailyRate"`
	MaintenanceIntervalMonths null.Int            `json:"maintenanceIntervalMonths" validate:"omitempty,gte=0,lte=120"`
}
