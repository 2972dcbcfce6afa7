package routes

import (
	"fleet-rental/internal/controllers"
	"fleet-rental/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runSiteRouter(api *echo.Group, siteCtrl *controllers.SiteController, authMW *middleware.AuthMiddleware) {
	sites := api.Group("/sites")

	sites.GET("", siteCtrl.GetSites)
	sites.GET("/:id", siteCtrl.FindSite)
	sites.POST("", siteCtrl.CreateSite, authMW.Auth, authMW.RequireRole(managers...))
	sites.PUT("/:id", siteCtrl.UpdateSite, authMW.Auth, authMW.RequireRole(managers...))
	sites.DELETE("/:id", siteCtrl.ArchiveSite, authMW.Auth, authMW.RequireRole(adminOnly...))
}
