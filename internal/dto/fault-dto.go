package dto

import "fleet-rental/pkg/types"

type CreateFaultDTO struct {
	UnitID      uint64     `json:"unitId" validate:"required"`
	Description string     `json:"description" validate:"required,max=2000"`
	Severity    string     `json:"severity" validate:"required,fault_severity"`
	Date        types.Date `json:"date"`
}
