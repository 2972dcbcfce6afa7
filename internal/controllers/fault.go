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

type FaultController struct {
	faultService services.FaultServiceInterface
	logger       *zap.Logger
}

func NewFaultController(faultService services.FaultServiceInterface, logger *zap.Logger) *FaultController {
	return &FaultController{faultService: faultService, logger: logger}
}

func (c *FaultController) GetFaults(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	faults, total, err := c.faultService.GetFaults(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if faults == nil {
		faults = make([]entities.FaultDetails, 0)
	}
	return utils.SuccessResponse(ctx, faults, "Successfully", http.StatusOK, total)
}

func (c *FaultController) ReportFault(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	actor, err := utils.GetActorFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var req dto.CreateFaultDTO
	if err := ctx.Bind(&req); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&req); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fault, err := c.faultService.ReportFault(reqCtx, actor, req)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, fault, "Fault reported", http.StatusCreated)
}

func (c *FaultController) ResolveFault(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	actor, err := utils.GetActorFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fault, err := c.faultService.ResolveFault(reqCtx, actor, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, fault, "Fault resolved", http.StatusOK)
}
