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

type TripHandler struct {
	tripService services.TripService
	logger      *logger.Logger
}

func NewTripHandler(tripService services.TripService, log *logger.Logger) *TripHandler {
	return &TripHandler{
		tripService: tripService,
		logger:      log,
	}
}

// List returns every scheduled trip.
func (h *TripHandler) List(c *gin.Context) {
	trips, err := h.tripService.List(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list trips")
		utils.ErrorResponse(c, http.StatusInternalServerError, utils.MsgServerError)
		return
	}

	utils.DataResponse(c, http.StatusOK, trips)
}

// Search filters trips by origin, destination and departure day. Every
// query parameter is optional.
func (h *TripHandler) Search(c *gin.Context) {
	request := services.TripSearchRequest{
		DiemDi:  c.Query("diemDi"),
		DiemDen: c.Query("diemDen"),
		NgayDi:  c.Query("ngayDi"),
	}

	trips, err := h.tripService.Search(c.Request.Context(), &request)
	if err != nil {
		h.logger.WithError(err).Error("Trip search failed")
		utils.ErrorResponse(c, http.StatusInternalServerError, utils.MsgServerError)
		return
	}

	utils.DataResponse(c, http.StatusOK, trips)
}

// Get returns a single trip by id.
func (h *TripHandler) Get(c *gin.Context) {
	tripID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, utils.MsgRouteNotFound)
		return
	}

	trip, err := h.tripService.Get(c.Request.Context(), tripID)
	if err != nil {
		if errors.Is(err, interfaces.ErrTripNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, utils.MsgRouteNotFound)
			return
		}
		h.logger.WithError(err).Error("Failed to get trip")
		utils.ErrorResponse(c, http.StatusInternalServerError, utils.MsgServerError)
		return
	}

	utils.DataResponse(c, http.StatusOK, trip)
}

// Create schedules a new trip. Admin only.
func (h *TripHandler) Create(c *gin.Context) {
	var request services.CreateTripRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.MsgMissingCredentials)
		return
	}

	trip, err := h.tripService.Create(c.Request.Context(), &request)
	if err != nil {
		if utils.IsValidationError(err) {
			utils.ErrorResponse(c, http.StatusBadRequest, utils.MsgMissingCredentials)
			return
		}
		h.logger.WithError(err).Error("Failed to create trip")
		utils.ErrorResponse(c, http.StatusInternalServerError, utils.MsgServerError)
		return
	}

	utils.DataResponse(c, http.StatusCreated, trip)
}
