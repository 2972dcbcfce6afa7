package routes

import (
	"fleet-rental/internal/controllers"
	"fleet-rental/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runDashboardRouter(api *echo.Group, dashboardCtrl *controllers.DashboardController, authMW *middleware.AuthMiddleware) {
	api.GET("/stats", dashboardCtrl.GetStats)
	api.GET("/notifications/unread", dashboardCtrl.GetUnreadNotifications)
	api.GET("/logs", dashboardCtrl.GetLogs, authMW.Auth, authMW.RequireRole(anyRole...))
}
