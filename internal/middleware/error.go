package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "gramkosh/internal/errors"
	"gramkosh/internal/logger"
)

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"error": gin.H{"code": code, "message": message},
	})
}

// ErrorHandler converts errors attached to the Gin context into the JSON
// error envelope. AppErrors keep their code and status; anything else is
// logged in full and answered with a generic internal error so no detail
// leaks to the caller.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		requestID := c.GetString(requestIDKey)

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			if appErr.Internal != nil {
				logger.Get().Errorw("app error",
					"request_id", requestID,
					"code", appErr.Code,
					"message", appErr.Message,
					"internal", appErr.Internal.Error(),
					"path", c.Request.URL.Path,
				)
			}
			writeError(c, appErr.StatusCode, appErr.Code, appErr.Message)
			return
		}

		logger.Get().Errorw("unexpected error",
			"request_id", requestID,
			"error", err.Error(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		writeError(c, apperrors.ErrInternalServer.StatusCode,
			apperrors.ErrInternalServer.Code, apperrors.ErrInternalServer.Message)
	}
}
