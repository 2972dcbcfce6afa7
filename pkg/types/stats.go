package types

import "github.com/shopspring/decimal"

type FamilyCost struct {
	Family string          `json:"family"`
	Total  decimal.Decimal `json:"total"`
}

type UnitCounts struct {
	Total       int64 `json:"totalUnits"`
	Available   int64 `json:"available"`
	Rented      int64 `json:"rented"`
	Maintenance int64 `json:"maintenance"`
	Faulted     int64 `json:"faulted"`
}

type FleetStats struct {
	UnitCounts
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	TotalMaintCost decimal.Decimal `json:"totalMaintCost"`
	MaintByFamily  []FamilyCost    `json:"maintByFamily"`
	Alerts         []Alert         `json:"alerts"`
}
