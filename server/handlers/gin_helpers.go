package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"hospitalserver/server/middleware"
)

// SendJSONResponse sends a JSON response through the Gin context.
func SendJSONResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// SendJSONError sends a JSON error through the Gin context and logs it.
func SendJSONError(c *gin.Context, statusCode int, message string) {
	slog.Error("HTTP error",
		"error", message,
		"status_code", statusCode,
		"request_id", middleware.GetRequestIDFromGin(c),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)

	c.JSON(statusCode, gin.H{
		"error":   true,
		"message": message,
	})
}
