package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "hospitalserver/server/errors"
)

var globalErrorMetrics = apperrors.NewErrorMetricsCollector()

// GetErrorMetrics returns the process-wide error metrics collector.
func GetErrorMetrics() *apperrors.ErrorMetricsCollector {
	return globalErrorMetrics
}

// HTTPError is the contract an error must implement to drive the HTTP
// status selection. Declared here to avoid a hard dependency on the errors
// package from every handler.
type HTTPError interface {
	error
	StatusCode() int
	UserMessage() string
	GetContext() string
	Unwrap() error
}

// ErrorResponse is the JSON shape of an error reply.
type ErrorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id,omitempty"`
}

// HandleGinError logs an error and writes the matching JSON response.
// AppError values carry their own status code and safe user message;
// anything else becomes an opaque 500.
func HandleGinError(c *gin.Context, err error) {
	reqID := GetRequestIDFromGin(c)

	statusCode := http.StatusInternalServerError
	message := "internal server error"

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		statusCode = httpErr.StatusCode()
		message = httpErr.UserMessage()

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			globalErrorMetrics.RecordError(appErr, c.Request.URL.Path, reqID)
		}

		slog.Error("Request error",
			"error", httpErr.Unwrap(),
			"user_message", message,
			"context", httpErr.GetContext(),
			"status_code", statusCode,
			"request_id", reqID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
	} else {
		slog.Error("Unhandled request error",
			"error", err,
			"request_id", reqID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
	}

	c.JSON(statusCode, ErrorResponse{
		Error:     message,
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: reqID,
	})
	c.Abort()
}
