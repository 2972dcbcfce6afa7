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

type SiteController struct {
	siteService services.SiteServiceInterface
	logger      *zap.Logger
}

func NewSiteController(siteService services.SiteServiceInterface, logger *zap.Logger) *SiteController {
	return &SiteController{siteService: siteService, logger: logger}
}

func (c *SiteController) GetSites(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	sites, total, err := c.siteService.GetSites(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if sites == nil {
		sites = make([]entities.Site, 0)
	}
	return utils.SuccessResponse(ctx, sites, "Successfully", http.StatusOK, total)
}

func (c *SiteController) FindSite(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	site, err := c.siteService.FindSite(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, site, "Successfully", http.StatusOK)
}

func (c *SiteController) CreateSite(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	actor, err := utils.GetActorFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var req dto.CreateSiteDTO
	if err := ctx.Bind(&req); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&req); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	site, err := c.siteService.CreateSite(reqCtx, actor, req)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, site, "Site created", http.StatusCreated)
}

func (c *SiteController) UpdateSite(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	actor, err := utils.GetActorFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var req dto.UpdateSiteDTO
	if err := ctx.Bind(&req); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&req); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	site, err := c.siteService.UpdateSite(reqCtx, actor, id, req)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, site, "Site updated", http.StatusOK)
}

// ArchiveSite backs DELETE: sites referenced by bookings are never removed.
func (c *SiteController) ArchiveSite(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	actor, err := utils.GetActorFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.siteService.ArchiveSite(reqCtx, actor, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Site archived", http.StatusOK)
}
