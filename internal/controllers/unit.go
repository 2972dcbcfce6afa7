package controllers

import (
	"net/http"

	"fleet-rental/internal/dto"
	"fleet-rental/internal/entities"
	"fleet-rental/internal/services"
	apperrors "fleet-rental/pkg/errors"
	"fleet-rental/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type UnitController struct {
	unitService services.UnitServiceInterface
	logger      *zap.Logger
}

func NewUnitController(unitService services.UnitServiceInterface, logger *zap.Logger) *UnitController {
	return &UnitController{unitService: unitService, logger: logger}
}

func (c *UnitController) GetUnits(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	units, total, err := c.unitService.GetUnits(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if units == nil {
		units = make([]entities.Unit, 0)
	}
	return utils.SuccessResponse(ctx, units, "Successfully", http.StatusOK, total)
}

func (c *UnitController) FindUnit(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	unit, err := c.unitService.FindUnit(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, unit, "Successfully", http.StatusOK)
}

func (c *UnitController) CreateUnit(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	actor, err := utils.GetActorFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var req dto.CreateUnitDTO
	if err := ctx.Bind(&req); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&req); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if req.DailyRate.IsNegative() {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("dailyRate must not be negative"), c.logger)
	}

	unit, err := c.unitService.CreateUnit(reqCtx, actor, req)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, unit, "Unit created", http.StatusCreated)
}

func (c *UnitController) UpdateUnit(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	actor, err := utils.GetActorFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var req dto.UpdateUnitDTO
	if err := ctx.Bind(&req); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&req); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if req.DailyRate.Valid && req.DailyRate.Decimal.IsNegative() {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("dailyRate must not be negative"), c.logger)
	}

	unit, err := c.unitService.UpdateUnit(reqCtx, actor, id, req)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, unit, "Unit updated", http.StatusOK)
}
