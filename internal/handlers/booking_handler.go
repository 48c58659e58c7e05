package handlers

import (
	"errors"
	"net/http"

	"haphuong/internal/repositories/interfaces"
	"haphuong/internal/services"
	"haphuong/internal/utils"
	"haphuong/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingHandler struct {
	bookingService services.BookingService
	logger         *logger.Logger
}

func NewBookingHandler(bookingService services.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		logger:         log,
	}
}

// Create books seats on a trip for the authenticated user.
func (h *BookingHandler) Create(c *gin.Context) {
	var request services.CreateBookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.MsgBookingCreateError)
		return
	}

	if userID, ok := currentUserID(c); ok {
		request.UserID = userID
	}

	booking, err := h.bookingService.Create(c.Request.Context(), &request)
	if err != nil {
		switch {
		case errors.Is(err, interfaces.ErrTripNotFound):
			utils.ErrorResponse(c, http.StatusNotFound, utils.MsgRouteNotFound)
		case errors.Is(err, interfaces.ErrNotEnoughSeats):
			utils.ErrorResponse(c, http.StatusBadRequest, utils.MsgNotEnoughSeats)
		case utils.IsValidationError(err):
			utils.ErrorResponse(c, http.StatusBadRequest, utils.MsgBookingCreateError)
		default:
			h.logger.WithError(err).Error("Failed to create booking")
			utils.ErrorResponse(c, http.StatusInternalServerError, utils.MsgBookingCreateError)
		}
		return
	}

	utils.DataResponse(c, http.StatusCreated, booking)
}

// List returns all bookings, newest first.
func (h *BookingHandler) List(c *gin.Context) {
	bookings, err := h.bookingService.List(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list bookings")
		utils.ErrorResponse(c, http.StatusInternalServerError, utils.MsgServerError)
		return
	}

	utils.DataResponse(c, http.StatusOK, bookings)
}

// Delete cancels a booking and returns its seats to the trip.
func (h *BookingHandler) Delete(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, utils.MsgBookingNotFound)
		return
	}

	if err := h.bookingService.Cancel(c.Request.Context(), bookingID); err != nil {
		if errors.Is(err, interfaces.ErrBookingNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, utils.MsgBookingNotFound)
			return
		}
		h.logger.WithError(err).Error("Failed to cancel booking")
		utils.ErrorResponse(c, http.StatusInternalServerError, utils.MsgBookingDeleteError)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{"message": utils.MsgBookingCancelled})
}
