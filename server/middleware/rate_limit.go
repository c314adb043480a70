package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// GinUploadRateLimitMiddleware throttles the upload endpoints. Imports are
// heavy (one file can hold thousands of rows) so a small global allowance is
// enough; everything over it gets a 429.
func GinUploadRateLimitMiddleware(perMinute int, burst int) gin.HandlerFunc {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = 3
	}

	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, ErrorResponse{
				Error:     "too many upload requests, slow down",
				Timestamp: time.Now().Format(time.RFC3339),
				RequestID: GetRequestIDFromGin(c),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
