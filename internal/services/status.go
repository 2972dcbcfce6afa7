package services

import "fleet-rental/internal/entities"

type UnitEvent int

const (
	EventBookingStarted UnitEvent = iota + 1
	EventBookingClosed
	EventMaintenanceLogged
	EventFaultReported
	EventCriticalFaultReported
	EventFaultResolved
)

func (e UnitEvent) String() string {
	switch e {
	case EventBookingStarted:
		return "booking_started"
	case EventBookingClosed:
		return "booking_closed"
	case EventMaintenanceLogged:
		return "maintenance_logged"
	case EventFaultReported:
		return "fault_reported"
	case EventCriticalFaultReported:
		return "critical_fault_reported"
	case EventFaultResolved:
		return "fault_resolved"
	}
	return "unknown"
}

// NextUnitStatus is the only place a unit's status is derived. The latest
// event wins regardless of what set the current status: resolving a fault
// frees a unit that is also in maintenance, and maintenance can start on a
// rented or faulted unit.
func NextUnitStatus(current entities.UnitStatus, event UnitEvent) entities.UnitStatus {
	switch event {
	case EventBookingStarted:
		return entities.UnitRented
	case EventBookingClosed, EventFaultResolved:
		return entities.UnitAvailable
	case EventMaintenanceLogged:
		return entities.UnitMaintenance
	case EventCriticalFaultReported:
		return entities.UnitFaulted
	}
	return current
}
