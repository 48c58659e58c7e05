package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response helpers mirror the wire shapes the mobile clients already parse.
// Three envelopes exist historically: {data}, {success, ...} and a bare
// {message} for errors on the auth/trips/bookings routes.

func DataResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{"data": data})
}

func SuccessResponse(c *gin.Context, statusCode int, body gin.H) {
	out := gin.H{"success": true}
	for k, v := range body {
		out[k] = v
	}
	c.JSON(statusCode, out)
}

func SuccessListResponse(c *gin.Context, count int, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   count,
		"data":    data,
	})
}

// ErrorResponse emits the bare {message} error shape.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

// FailResponse emits the chat-style {success: false, message} error shape.
func FailResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"success": false, "message": message})
}
