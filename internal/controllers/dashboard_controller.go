package controllers

import (
	"net/http"

	"fleet-rental/internal/entities"
	"fleet-rental/internal/services"
	"fleet-rental/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// DashboardController serves the read-only views: stats, audit trail and
// the unread notification queue.
type DashboardController struct {
	statsService        services.StatsServiceInterface
	auditLogService     services.AuditLogServiceInterface
	notificationService services.NotificationServiceInterface
	logger              *zap.Logger
}

func NewDashboardController(
	statsService services.StatsServiceInterface,
	auditLogService services.AuditLogServiceInterface,
	notificationService services.NotificationServiceInterface,
	logger *zap.Logger,
) *DashboardController {
	return &DashboardController{
		statsService:        statsService,
		auditLogService:     auditLogService,
		notificationService: notificationService,
		logger:              logger,
	}
}

func (c *DashboardController) GetStats(ctx echo.Context) error {
	stats, err := c.statsService.GetStats(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, stats, "Successfully", http.StatusOK)
}

func (c *DashboardController) GetLogs(ctx echo.Context) error {
	logs, err := c.auditLogService.GetLogs(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if logs == nil {
		logs = make([]entities.AuditLog, 0)
	}
	return utils.SuccessResponse(ctx, logs, "Successfully", http.StatusOK)
}

func (c *DashboardController) GetUnreadNotifications(ctx echo.Context) error {
	list, err := c.notificationService.GetUnread(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, list, "Successfully", http.StatusOK)
}
