package middleware

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/yukikurage/taskhub-api/internal/errors"
)

// ErrorHandler renders the last error a handler attached with c.Error.
// Unknown errors become a 500 whose details are hidden in production.
func ErrorHandler(log *zap.Logger, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var apiErr *apierrors.APIError
		if errors.As(err, &apiErr) {
			if apiErr.Status() >= 500 {
				log.Error("Request failed",
					zap.String("request_id", c.GetString(requestIDKey)),
					zap.Error(err),
				)
			}
			apierrors.RespondWithError(c, apiErr)
			return
		}

		log.Error("Unhandled error",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		internal := apierrors.ErrInternalError
		if !production {
			internal = internal.WithDetails(err.Error())
		}
		apierrors.RespondWithError(c, internal)
	}
}

// Recovery turns a panic into a 500 envelope.
func Recovery(log *zap.Logger, production bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("Panic recovered",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Any("panic", recovered),
			zap.Stack("stack"),
		)
		internal := apierrors.ErrInternalError
		if !production {
			internal = internal.WithDetails(fmt.Sprint(recovered))
		}
		apierrors.RespondWithError(c, internal)
	})
}
