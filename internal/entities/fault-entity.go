package entities

import "time"

type FaultSeverity string

const (
	SeverityLow      FaultSeverity = "low"
	SeverityMedium   FaultSeverity = "medium"
	SeverityCritical FaultSeverity = "critical"
)

func (s FaultSeverity) IsValid() bool {
	return s == SeverityLow || s == SeverityMedium || s == SeverityCritical
}

type FaultStatus string

const (
	FaultOpen     FaultStatus = "open"
	FaultResolved FaultStatus = "resolved"
)

type Fault struct {
	ID          uint64        `json:"id" db:"id"`
	UnitID      uint64        `json:"unitId" db:"unit_id"`
	Description string        `json:"description" db:"description"`
	Severity    FaultSeverity `json:"severity" db:"severity"`
	ReportedAt  time.Time     `json:"reportedAt" db:"reported_at"`
	Status      FaultStatus   `json:"status" db:"status"`
	ResolvedAt  *time.Time    `json:"resolvedAt" db:"resolved_at"`
}

type FaultDetails struct {
	Fault
	UnitCode string `json:"unitCode"`
}
