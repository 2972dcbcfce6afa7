package dto

import "fleet-rental/pkg/types"

type CreateMaintenanceDTO struct {
	UnitID     uint64     `json:"unitId" validate:"required"`
	Date       types.Date `json:"date"`
	Kind       string     `json:"kind" validate:"required,maintenance_kind"`
	Technician string     `json:"technician" validate:"max=255"`
	Notes      string     `json:"notes" validate:"max=2000"`
}
