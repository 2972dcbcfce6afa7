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
	"go.uber.org/zap"
)

type MaintenanceServiceInterface interface {
	LogMaintenance(ctx context.Context, actor string, req dto.CreateMaintenanceDTO) (*entities.Maintenance, error)
	GetMaintenance(ctx context.Context, filter types.Filter) ([]entities.MaintenanceDetails, uint64, error)
}

type MaintenanceService struct {
	*BaseService
	unitRepo        repositories.UnitRepositoryInterface
	maintenanceRepo repositories.MaintenanceRepositoryInterface
	tariffs         *TariffTable
}

func NewMaintenanceService(
	base *BaseService,
	unitRepo repositories.UnitRepositoryInterface,
	maintenanceRepo repositories.MaintenanceRepositoryInterface,
	tariffs *TariffTable,
) MaintenanceServiceInterface {
	return &MaintenanceService{
		BaseService:     base,
		unitRepo:        unitRepo,
		maintenanceRepo: maintenanceRepo,
		tariffs:         tariffs,
	}
}

// LogMaintenance records the event at its tariff price and puts the unit in
// maintenance whatever its current status.
func (s *MaintenanceService) LogMaintenance(ctx context.Context, actor string, req dto.CreateMaintenanceDTO) (*entities.Maintenance, error) {
	kind := entities.NormalizeMaintenanceKind(req.Kind)
	if !kind.IsValid() {
		return nil, apperrors.NewInvalidInputError("unknown maintenance kind %q", req.Kind)
	}
	date := req.Date.Time
	if date.IsZero() {
		date = s.now()
	}

	var event *entities.Maintenance
	var unit *entities.Unit
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		unit, err = s.unitRepo.LockUnit(ctx, tx, req.UnitID)
		if err != nil {
			return fmt.Errorf("unit %d: %w", req.UnitID, err)
		}

		event = &entities.Maintenance{
			UnitID:     unit.ID,
			Date:       date,
			Kind:       kind,
			Technician: req.Technician,
			Cost:       s.tariffs.Cost(unit.Family, kind),
			Notes:      req.Notes,
		}
		if err := s.maintenanceRepo.CreateMaintenance(ctx, tx, event); err != nil {
			return fmt.Errorf("create maintenance: %w", err)
		}

		update := repositories.UnitStatusUpdate{
			Status:            NextUnitStatus(unit.Status, EventMaintenanceLogged),
			LastMaintenanceAt: &date,
		}
		if err := s.unitRepo.UpdateStatus(ctx, tx, unit.ID, update); err != nil {
			return err
		}
		return s.audit(ctx, tx, actor, "maintenance.create",
			fmt.Sprintf("Maintenance #%d (%s) on unit %s, cost %s", event.ID, kind, unit.Code, event.Cost.StringFixed(2)))
	})
	if err != nil {
		return nil, err
	}

	if unit.Status == entities.UnitRented || unit.Status == entities.UnitFaulted {
		s.logger.Warn("maintenance started on a unit that was not available",
			zap.String("unit", unit.Code),
			zap.String("previous_status", string(unit.Status)),
		)
	}
	s.notify(ctx, entities.NotificationInfo, "Maintenance logged for %s (%s)", unit.Code, kind)
	return event, nil
}

func (s *MaintenanceService) GetMaintenance(ctx context.Context, filter types.Filter) ([]entities.MaintenanceDetails, uint64, error) {
	var events []entities.MaintenanceDetails
	var total uint64
	err := s.txManager.RunQuery(ctx, func(ctx context.Context) error {
		var err error
		events, total, err = s.maintenanceRepo.GetMaintenance(ctx, filter)
		return err
	})
	return events, total, err
}
