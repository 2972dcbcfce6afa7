package types

type AlertKind string

const (
	AlertInfo       AlertKind = "info"
	AlertWarning    AlertKind = "warning"
	AlertSuggestion AlertKind = "suggestion"
)

// Alert is derived on demand from unit and booking state and never stored.
type Alert struct {
	Kind    AlertKind `json:"type"`
	Message string    `json:"message"`
	UnitID  uint64    `json:"unitId"`
}
