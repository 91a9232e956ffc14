package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/logger"
	"expensetracker/internal/response"
)

// ErrorHandler returns a Gin middleware that converts errors set on the Gin
// context into the failure envelope, unless a response was already written.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		// Process the last error (most relevant in a middleware chain)
		response.Error(c, c.Errors.Last().Err)
	}
}

// Recovery returns a Gin middleware that turns a panic into a logged 500 envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Get().Errorw("panic recovered",
			"request_id", RequestID(c),
			"panic", fmt.Sprint(recovered),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		response.Error(c, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("panic: %v", recovered)))
	})
}

// NotFound answers unknown routes with the 404 envelope.
func NotFound(c *gin.Context) {
	response.Error(c, apperrors.ErrNotFound)
}

// MethodNotAllowed answers a known route called with the wrong method.
func MethodNotAllowed(c *gin.Context) {
	response.Error(c, &apperrors.AppError{
		Code:       "METHOD_NOT_ALLOWED",
		Message:    "Method not allowed",
		StatusCode: http.StatusMethodNotAllowed,
	})
}
