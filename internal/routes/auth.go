package routes

import (
	"fleet-rental/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runAuthRouter(api *echo.Group, authCtrl *controllers.AuthController) {
	api.POST("/login", authCtrl.Login)
}
