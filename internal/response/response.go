// Package response writes the JSON envelope shared by every endpoint:
//
//	{"success": true, "data": ..., "message": "...", "count": N}
//	{"success": false, "code": "...", "message": "...", "error": "..."}
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/logger"
)

// Envelope is the body of a successful response.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
}

// ErrorEnvelope is the body of a failed response. Error carries the raw
// underlying failure for diagnostics.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// OK writes a 200 envelope with data.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 envelope with data and a message.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data, Message: message})
}

// Message writes a 200 envelope with a message and optional data.
func Message(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Message: message})
}

// List writes a 200 envelope with a sequence and its length.
func List[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	count := len(items)
	c.JSON(http.StatusOK, Envelope{Success: true, Data: items, Count: &count})
}

// Error writes a failure envelope. An *AppError keeps its status, code and
// message; anything else is logged and reported as an internal error.
func Error(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		appErr = apperrors.Wrap(apperrors.ErrInternalServer, err)
	} else if appErr.Internal != nil {
		logger.Get().Errorw("app error",
			"code", appErr.Code,
			"message", appErr.Message,
			"internal", appErr.Internal.Error(),
			"path", c.Request.URL.Path,
		)
	}

	c.AbortWithStatusJSON(appErr.StatusCode, ErrorEnvelope{
		Success: false,
		Code:    appErr.Code,
		Message: appErr.Message,
		Error:   appErr.Detail(),
	})
}
