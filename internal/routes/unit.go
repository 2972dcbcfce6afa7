package routes

import (
	"fleet-rental/internal/controllers"
	"fleet-rental/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runUnitRouter(api *echo.Group, unitCtrl *controllers.UnitController, authMW *middleware.AuthMiddleware) {
	units := api.Group("/units")

	units.GET("", unitCtrl.GetUnits)
	units.GET("/:id", unitCtrl.FindUnit)
	units.POST("", unitCtrl.CreateUnit, authMW.Auth, authMW.RequireRole(managers...))
	units.PUT("/:id", unitCtrl.UpdateUnit, authMW.Auth, authMW.RequireRole(managers...))
}
