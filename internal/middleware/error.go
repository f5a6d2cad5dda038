package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "followuply/internal/errors"
	"followuply/internal/logger"
	"followuply/internal/toast"
)

// ErrorHandler returns a Gin middleware that converts errors set on the Gin
// context into the error body and toast. Unclassified errors become internal
// errors so their details never reach the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		// Process the last error (most relevant in a middleware chain)
		err := c.Errors.Last().Err
		LogError(c, err)
		c.JSON(toast.ErrorResponse(err))
	}
}

// LogError logs err at a level matching its kind. Validation, not-found and
// other caller mistakes are not logged.
func LogError(c *gin.Context, err error) {
	appErr, ok := asAppError(err)
	if !ok {
		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"request_id", c.GetString(requestIDKey),
		)
		return
	}
	if appErr.Internal == nil {
		return
	}

	fields := []interface{}{
		"code", appErr.Code,
		"internal", appErr.Internal.Error(),
		"path", c.Request.URL.Path,
		"request_id", c.GetString(requestIDKey),
	}
	switch appErr.Kind {
	case apperrors.KindTransient:
		logger.Get().Warnw("storage unavailable", fields...)
	case apperrors.KindInternal:
		logger.Get().Errorw("app error", fields...)
	default:
		logger.Get().Debugw("app error", fields...)
	}
}

func asAppError(err error) (*apperrors.AppError, bool) {
	var appErr *apperrors.AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}
