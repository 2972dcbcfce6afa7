package services

import (
	"context"
	"fmt"

	"fleet-rental/internal/dto"
	"fleet-rental/internal/entities"
	"fleet-rental/internal/repositories"
	apperrors "fleet-rental/pkg/errors"
	"fleet-rental/pkg/types"

	"github.com/jackc/pgx/v5"
)

type FaultServiceInterface interface {
	ReportFault(ctx context.Context, actor string, req dto.CreateFaultDTO) (*entities.Fault, error)
	ResolveFault(ctx context.Context, actor string, id uint64) (*entities.Fault, error)
	GetFaults(ctx context.Context, filter types.Filter) ([]entities.FaultDetails, uint64, error)
}

type FaultService struct {
	*BaseService
	unitRepo  repositories.UnitRepositoryInterface
	faultRepo repositories.FaultRepositoryInterface
}

func NewFaultService(
	base *BaseService,
	unitRepo repositories.UnitRepositoryInterface,
	faultRepo repositories.FaultRepositoryInterface,
) FaultServiceInterface {
	return &FaultService{BaseService: base, unitRepo: unitRepo, faultRepo: faultRepo}
}

func (s *FaultService) ReportFault(ctx context.Context, actor string, req dto.CreateFaultDTO) (*entities.Fault, error) {
	severity := entities.FaultSeverity(req.Severity)
	if !severity.IsValid() {
		return nil, apperrors.NewInvalidInputError("unknown severity %q", req.Severity)
	}
	reportedAt := req.Date.Time
	if reportedAt.IsZero() {
		reportedAt = s.now()
	}

	var fault *entities.Fault
	var unit *entities.Unit
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		unit, err = s.unitRepo.LockUnit(ctx, tx, req.UnitID)
		if err != nil {
			return fmt.Errorf("unit %d: %w", req.UnitID, err)
		}

		fault = &entities.Fault{
			UnitID:      unit.ID,
			Description: req.Description,
			Severity:    severity,
			ReportedAt:  reportedAt,
			Status:      entities.FaultOpen,
		}
		if err := s.faultRepo.CreateFault(ctx, tx, fault); err != nil {
			return fmt.Errorf("create fault: %w", err)
		}

		event := EventFaultReported
		if severity == entities.SeverityCritical {
			event = EventCriticalFaultReported
		}
		if next := NextUnitStatus(unit.Status, event); next != unit.Status {
			if err := s.unitRepo.UpdateStatus(ctx, tx, unit.ID, repositories.UnitStatusUpdate{Status: next}); err != nil {
				return err
			}
		}
		return s.audit(ctx, tx, actor, "fault.report",
			fmt.Sprintf("Fault #%d (%s) on unit %s: %s", fault.ID, severity, unit.Code, fault.Description))
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, entities.NotificationWarning, "Fault reported on %s (%s)", unit.Code, severity)
	return fault, nil
}

// ResolveFault frees the unit unconditionally, even when other faults on it
// are still open. Resolving a resolved fault returns it unchanged.
func (s *FaultService) ResolveFault(ctx context.Context, actor string, id uint64) (*entities.Fault, error) {
	var fault *entities.Fault
	var unit *entities.Unit
	alreadyResolved := false
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		fault, err = s.faultRepo.LockFault(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("fault %d: %w", id, err)
		}
		alreadyResolved = fault.Status == entities.FaultResolved
		if alreadyResolved {
			return nil
		}

		unit, err = s.unitRepo.LockUnit(ctx, tx, fault.UnitID)
		if err != nil {
			return fmt.Errorf("unit %d: %w", fault.UnitID, err)
		}

		now := s.now()
		if err := s.faultRepo.ResolveFault(ctx, tx, fault.ID, now); err != nil {
			return err
		}
		fault.Status = entities.FaultResolved
		fault.ResolvedAt = &now

		next := NextUnitStatus(unit.Status, EventFaultResolved)
		if err := s.unitRepo.UpdateStatus(ctx, tx, unit.ID, repositories.UnitStatusUpdate{Status: next}); err != nil {
			return err
		}
		return s.audit(ctx, tx, actor, "fault.resolve",
			fmt.Sprintf("Fault #%d resolved, unit %s available", fault.ID, unit.Code))
	})
	if err != nil {
		return nil, err
	}
	if alreadyResolved {
		return fault, nil
	}

	s.notify(ctx, entities.NotificationSuccess, "Fault #%d resolved, %s is available", fault.ID, unit.Code)
	return fault, nil
}

func (s *FaultService) GetFaults(ctx context.Context, filter types.Filter) ([]entities.FaultDetails, uint64, error) {
	var faults []entities.FaultDetails
	var total uint64
	err := s.txManager.RunQuery(ctx, func(ctx context.Context) error {
		var err error
		faults, total, err = s.faultRepo.GetFaults(ctx, filter)
		return err
	})
	return faults, total, err
}
