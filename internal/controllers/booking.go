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

type BookingController struct {
	bookingService services.BookingServiceInterface
	exportService  services.ExportServiceInterface
	logger         *zap.Logger
}

func NewBookingController(
	bookingService services.BookingServiceInterface,
	exportService services.ExportServiceInterface,
	logger *zap.Logger,
) *BookingController {
	return &BookingController{
		bookingService: bookingService,
		exportService:  exportService,
		logger:         logger,
	}
}

func (c *BookingController) GetBookings(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	bookings, total, err := c.bookingService.GetBookings(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if bookings == nil {
		bookings = make([]entities.BookingDetails, 0)
	}
	return utils.SuccessResponse(ctx, bookings, "Successfully", http.StatusOK, total)
}

func (c *BookingController) RequestBooking(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	actor, err := utils.GetActorFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var req dto.CreateBookingDTO
	if err := ctx.Bind(&req); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&req); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	booking, err := c.bookingService.RequestBooking(reqCtx, actor, req)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, booking, "Booking created", http.StatusCreated)
}

func (c *BookingController) UpdateStatus(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	actor, err := utils.GetActorFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var req dto.UpdateBookingStatusDTO
	if err := ctx.Bind(&req); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&req); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	booking, err := c.bookingService.CloseBooking(reqCtx, actor, id, entities.BookingStatus(req.Status))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, booking, "Booking updated", http.StatusOK)
}

func (c *BookingController) Export(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	f, err := c.exportService.ExportBookings(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return respondWithXLSX(ctx, f, "bookings")
}
