package routes

import (
	"fleet-rental/internal/controllers"
	"fleet-rental/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runBookingRouter(api *echo.Group, bookingCtrl *controllers.BookingController, authMW *middleware.AuthMiddleware) {
	bookings := api.Group("/bookings")

	bookings.GET("", bookingCtrl.GetBookings)
	bookings.GET("/export", bookingCtrl.Export, authMW.Auth, authMW.RequireRole(anyRole...))
	bookings.POST("", bookingCtrl.RequestBooking, authMW.Auth, authMW.RequireRole(managers...))
	bookings.PUT("/:id/status", bookingCtrl.UpdateStatus, authMW.Auth, authMW.RequireRole(managers...))
}
