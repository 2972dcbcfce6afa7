package routes

import (
	"fleet-rental/internal/controllers"
	"fleet-rental/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runFaultRouter(api *echo.Group, faultCtrl *controllers.FaultController, authMW *middleware.AuthMiddleware) {
	faults := api.Group("/faults")

	faults.GET("", faultCtrl.GetFaults)
	// observers on site may report breakdowns
	faults.POST("", faultCtrl.ReportFault, authMW.Auth, authMW.RequireRole(anyRole...))
	faults.PUT("/:id/resolve", faultCtrl.ResolveFault, authMW.Auth, authMW.RequireRole(managers...))
}
