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

type MaintenanceController struct {
	maintenanceService services.MaintenanceServiceInterface
	exportService      services.ExportServiceInterface
	logger             *zap.Logger
}

func NewMaintenanceController(
	maintenanceService services.MaintenanceServiceInterface,
	exportService services.ExportServiceInterface,
	logger *zap.Logger,
) *MaintenanceController {
	return &MaintenanceController{
		maintenanceService: maintenanceService,
		exportService:      exportService,
		logger:             logger,
	}
}

func (c *MaintenanceController) GetMaintenance(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	events, total, err := c.maintenanceService.GetMaintenance(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if events == nil {
		events = make([]entities.MaintenanceDetails, 0)
	}
	return utils.SuccessResponse(ctx, events, "Successfully", http.StatusOK, total)
}

func (c *MaintenanceController) LogMaintenance(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	actor, err := utils.GetActorFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var req dto.CreateMaintenanceDTO
	if err := ctx.Bind(&req); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&req); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	event, err := c.maintenanceService.LogMaintenance(reqCtx, actor, req)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, event, "Maintenance logged", http.StatusCreated)
}

func (c *MaintenanceController) Export(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	f, err := c.exportService.ExportMaintenance(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return respondWithXLSX(ctx, f, "maintenance")
}
