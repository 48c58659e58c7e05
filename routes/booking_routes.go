package routes

import (
	"haphuong/internal/handlers"
	"haphuong/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(r *gin.RouterGroup, bookingHandler *handlers.BookingHandler, jwtSecret string) {
	bookings := r.Group("/bookings")
	bookings.Use(middleware.AuthRequired(jwtSecret))
	{
		bookings.POST("", bookingHandler.Create)
		bookings.GET("", bookingHandler.List)
		bookings.DELETE("/:id", bookingHandler.Delete)
	}
}
