package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gramkosh/internal/logger"
)

const requestIDKey = "requestID"

// RequestLogging returns a Gin middleware that tags each request with a
// unique ID (echoed in the X-Request-ID header) and logs method, path,
// status, latency, and client IP. Server errors are logged at error level.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := uuid.New().String()
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		fields := []interface{}{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if userID, ok := c.Get(ContextUserID); ok {
			fields = append(fields, "user_id", userID)
		}

		log := logger.Get()
		if c.Writer.Status() >= 500 {
			log.Errorw("request", fields...)
		} else {
			log.Infow("request", fields...)
		}
	}
}
