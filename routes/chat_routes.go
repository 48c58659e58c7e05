package routes

import (
	"haphuong/internal/handlers"
	"haphuong/internal/middleware"
	"haphuong/pkg/websocket"

	"github.com/gin-gonic/gin"
)

func SetupChatRoutes(r *gin.RouterGroup, chatHandler *handlers.ChatHandler, wsHandler *websocket.Handler, jwtSecret string) {
	chat := r.Group("/chat")

	// The socket authenticates itself via token query parameter.
	chat.GET("/ws", wsHandler.HandleWebSocket)

	chat.Use(middleware.AuthRequired(jwtSecret))
	{
		chat.GET("/rooms/:userId", chatHandler.ListRooms)
		chat.POST("/room", chatHandler.CreateRoom)
		chat.GET("/messages/:roomId", chatHandler.ListMessages)
		chat.POST("/send", chatHandler.Send)
		chat.DELETE("/messages/:messageId", chatHandler.RecallMessage)
		chat.PUT("/read/:roomId", chatHandler.MarkRead)
	}
}
