package dto

import "fleet-rental/pkg/types"

type CreateBookingDTO struct {
	UnitID uint64      `json:"unitId" validate:"required"`
	SiteID uint64      `json:"siteId" validate:"required"`
	Start  types.Date  `json:"start"`
	End    *types.Date `json:"end"`
	Notes  string      `json:"notes" validate:"max=1000"`
}

type UpdateBookingStatusDTO struct {
	Status string `json:"status" validate:"required,booking_status"`
}
