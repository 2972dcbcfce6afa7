package services

import (
	"context"
	"fmt"
	"strings"

	"fleet-rental/internal/dto"
	"fleet-rental/internal/entities"
	"fleet-rental/internal/repositories"
	"fleet-rental/pkg/types"

	"github.com/jackc/pgx/v5"
)

type UnitServiceInterface interface {
	GetUnits(ctx context.Context, filter types.Filter) ([]entities.Unit, uint64, error)
	FindUnit(ctx context.Context, id uint64) (*entities.Unit, error)
	CreateUnit(ctx context.Context, actor string, req dto.CreateUnitDTO) (*entities.Unit, error)
	UpdateUnit(ctx context.Context, actor string, id uint64, req dto.UpdateUnitDTO) (*entities.Unit, error)
}

type UnitService struct {
	*BaseService
	unitRepo repositories.UnitRepositoryInterface
}

func NewUnitService(base *BaseService, unitRepo repositories.UnitRepositoryInterface) UnitServiceInterface {
	return &UnitService{BaseService: base, unitRepo: unitRepo}
}

func (s *UnitService) GetUnits(ctx context.Context, filter types.Filter) ([]entities.Unit, uint64, error) {
	var units []entities.Unit
	var total uint64
	err := s.txManager.RunQuery(ctx, func(ctx context.Context) error {
		var err error
		units, total, err = s.unitRepo.GetUnits(ctx, filter)
		return err
	})
	return units, total, err
}

func (s *UnitService) FindUnit(ctx context.Context, id uint64) (*entities.Unit, error) {
	var unit *entities.Unit
	err := s.txManager.RunQuery(ctx, func(ctx context.Context) error {
		var err error
		unit, err = s.unitRepo.FindUnit(ctx, nil, id)
		return err
	})
	return unit, err
}

// CreateUnit registers a unit as available.
func (s *UnitService) CreateUnit(ctx context.Context, actor string, req dto.CreateUnitDTO) (*entities.Unit, error) {
	unit := &entities.Unit{
		Code:                      strings.TrimSpace(req.Code),
		Family:                    strings.ToLower(strings.TrimSpace(req.Family)),
		Category:                  req.Category,
		Brand:                     req.Brand,
		Model:                     req.Model,
		Serial:                    strings.TrimSpace(req.Serial),
		Status:                    entities.UnitAvailable,
		DailyRate:                 req.DailyRate,
		MaintenanceIntervalMonths: req.MaintenanceIntervalMonths,
	}
	if unit.MaintenanceIntervalMonths == 0 {
		unit.MaintenanceIntervalMonths = entities.DefaultMaintenanceIntervalMonths
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.unitRepo.CreateUnit(ctx, tx, unit); err != nil {
			return fmt.Errorf("create unit: %w", err)
		}
		return s.audit(ctx, tx, actor, "unit.create", fmt.Sprintf("Unit %s (%s) registered", unit.Code, unit.Family))
	})
	if err != nil {
		return nil, err
	}
	return unit, nil
}

func (s *UnitService) UpdateUnit(ctx context.Context, actor string, id uint64, req dto.UpdateUnitDTO) (*entities.Unit, error) {
	var unit *entities.Unit
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		unit, err = s.unitRepo.LockUnit(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("unit %d: %w", id, err)
		}

		if req.Code.Valid {
			unit.Code = strings.TrimSpace(req.Code.String)
		}
		if req.Family.Valid {
			unit.Family = strings.ToLower(strings.TrimSpace(req.Family.String))
		}
		if req.Category.Valid {
			unit.Category = req.Category.String
		}
		if req.Brand.Valid {
			unit.Brand = req.Brand.String
		}
		if req.Model.Valid {
			unit.Model = req.Model.String
		}
		if req.Serial.Valid {
			unit.Serial = strings.TrimSpace(req.Serial.String)
		}
		if req.DailyRate.Valid {
			unit.DailyRate = req.DailyRate.Decimal
		}
		if req.MaintenanceIntervalMonths.Valid {
			unit.MaintenanceIntervalMonths = req.MaintenanceIntervalMonths.Int
		}

		if err := s.unitRepo.UpdateUnit(ctx, tx, unit); err != nil {
			return fmt.Errorf("update unit: %w", err)
		}
		return s.audit(ctx, tx, actor, "unit.update", fmt.Sprintf("Unit %s updated", unit.Code))
	})
	if err != nil {
		return nil, err
	}
	return unit, nil
}
