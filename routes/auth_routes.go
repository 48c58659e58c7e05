package routes

import (
	"haphuong/internal/handlers"
	"haphuong/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes wires the account endpoints. The legacy /api/users list
// is kept alongside the admin /api/auth/users surface because the mobile
// client still calls both.
func SetupAuthRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler, jwtSecret string) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)

		users := auth.Group("/users")
		users.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
		{
			users.GET("", authHandler.ListUsersWithCount)
			users.PUT("/:id", authHandler.UpdateUser)
		}
	}

	r.GET("/users", authHandler.ListUsers)
}
