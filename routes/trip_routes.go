package routes

import (
	"haphuong/internal/handlers"
	"haphuong/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupTripRoutes(r *gin.RouterGroup, tripHandler *handlers.TripHandler, jwtSecret string) {
	trips := r.Group("/trips")
	{
		trips.GET("", tripHandler.List)
		trips.GET("/search", tripHandler.Search)
		trips.GET("/:id", tripHandler.Get)
	}

	admin := r.Group("/trips")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.POST("", tripHandler.Create)
	}
}
