package routes

import (
	"net/http"
	"time"

	"haphuong/internal/handlers"
	"haphuong/internal/middleware"
	"haphuong/internal/utils"
	"haphuong/pkg/websocket"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth    *handlers.AuthHandler
	Trip    *handlers.TripHandler
	Booking *handlers.BookingHandler
	Chat    *handlers.ChatHandler
	WS      *websocket.Handler
}

// SetupRouter assembles the full HTTP surface.
func SetupRouter(h *Handlers, jwtSecret string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": utils.MsgInternalError})
	}))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Hà Phương Bus API Server",
			"version": utils.AppVersion,
			"status":  "running",
			"endpoints": gin.H{
				"auth":     "/api/auth/login",
				"trips":    "/api/trips",
				"bookings": "/api/bookings",
				"users":    "/api/users",
			},
		})
	})

	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	SetupAuthRoutes(api, h.Auth, jwtSecret)
	SetupTripRoutes(api, h.Trip, jwtSecret)
	SetupBookingRoutes(api, h.Booking, jwtSecret)
	SetupChatRoutes(api, h.Chat, h.WS, jwtSecret)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": utils.MsgRouteNotFound})
	})

	return router
}
