package routes

import (
	"fleet-rental/internal/controllers"
	"fleet-rental/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runMaintenanceRouter(api *echo.Group, maintenanceCtrl *controllers.MaintenanceController, authMW *middleware.AuthMiddleware) {
	maintenance := api.Group("/maintenance")

	maintenance.GET("", maintenanceCtrl.GetMaintenance)
	maintenance.GET("/export", maintenanceCtrl.Export, authMW.Auth, authMW.RequireRole(anyRole...))
	maintenance.POST("", maintenanceCtrl.LogMaintenance, authMW.Auth, authMW.RequireRole(managers...))
}
