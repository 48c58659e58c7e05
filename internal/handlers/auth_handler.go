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

type AuthHandler struct {
	authService services.AuthService
	logger      *logger.Logger
}

func NewAuthHandler(authService services.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      log,
	}
}

// Login authenticates by phone number and password.
func (h *AuthHandler) Login(c *gin.Context) {
	var request services.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.MsgMissingCredentials)
		return
	}
	if request.SoDienThoai == "" || request.MatKhau == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.MsgMissingCredentials)
		return
	}

	response, err := h.authService.Login(c.Request.Context(), &request)
	if err != nil {
		switch {
		case errors.Is(err, interfaces.ErrUserNotFound):
			utils.ErrorResponse(c, http.StatusUnauthorized, utils.MsgPhoneNotFound)
		case errors.Is(err, interfaces.ErrWrongPassword):
			utils.ErrorResponse(c, http.StatusUnauthorized, utils.MsgWrongPassword)
		default:
			h.logger.WithError(err).Error("Login failed")
			utils.ErrorResponse(c, http.StatusInternalServerError, utils.MsgServerError)
		}
		return
	}

	// The auth payload is the one response served unwrapped.
	c.JSON(http.StatusOK, response)
}

// Register creates a new account with the default user role.
func (h *AuthHandler) Register(c *gin.Context) {
	var request services.RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.MsgMissingCredentials)
		return
	}

	response, err := h.authService.Register(c.Request.Context(), &request)
	if err != nil {
		switch {
		case errors.Is(err, interfaces.ErrPhoneTaken):
			utils.ErrorResponse(c, http.StatusBadRequest, utils.MsgPhoneTaken)
		case utils.IsValidationError(err):
			utils.ErrorResponse(c, http.StatusBadRequest, utils.MsgMissingCredentials)
		default:
			h.logger.WithError(err).Error("Registration failed")
			utils.ErrorResponse(c, http.StatusInternalServerError, utils.MsgServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListUsers returns all accounts wrapped in the plain {data} envelope.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list users")
		utils.ErrorResponse(c, http.StatusInternalServerError, utils.MsgServerError)
		return
	}

	utils.DataResponse(c, http.StatusOK, users)
}

// ListUsersWithCount is the admin variant that also reports the count.
func (h *AuthHandler) ListUsersWithCount(c *gin.Context) {
	users, err := h.authService.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list users")
		utils.FailResponse(c, http.StatusInternalServerError, utils.MsgServerError)
		return
	}

	utils.SuccessListResponse(c, len(users), users)
}

// UpdateUser lets an admin edit another account's profile and role.
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.FailResponse(c, http.StatusNotFound, utils.MsgUserNotFound)
		return
	}

	var request services.UpdateUserRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.FailResponse(c, http.StatusBadRequest, utils.MsgUserUpdateErr)
		return
	}

	user, err := h.authService.UpdateUser(c.Request.Context(), userID, &request)
	if err != nil {
		switch {
		case errors.Is(err, interfaces.ErrUserNotFound):
			utils.FailResponse(c, http.StatusNotFound, utils.MsgUserNotFound)
		case errors.Is(err, interfaces.ErrPhoneTaken):
			utils.FailResponse(c, http.StatusBadRequest, utils.MsgPhoneTaken)
		default:
			h.logger.WithError(err).Error("Failed to update user")
			utils.FailResponse(c, http.StatusInternalServerError, utils.MsgUserUpdateErr)
		}
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{
		"data":    user,
		"message": utils.MsgUserUpdated,
	})
}
