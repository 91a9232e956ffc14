package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/response"
)

// healthTimeout bounds the store ping of the health check.
const healthTimeout = 2 * time.Second

// Pinger reports whether the store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// SystemHandler serves the API index and health check.
type SystemHandler struct {
	store Pinger
}

// NewSystemHandler creates a new SystemHandler. A nil store skips the ping.
func NewSystemHandler(store Pinger) *SystemHandler {
	return &SystemHandler{store: store}
}

// HealthResponse is the payload of the health check.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Health reports liveness and store reachability
// @Summary     Health check
// @Tags        system
// @Produce     json
// @Success     200 {object} response.Envelope{data=HealthResponse} "Server is running"
// @Failure     503 {object} ErrorResponse "Store unreachable"
// @Router      /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()
		if err := h.store.PingContext(ctx); err != nil {
			respondWithError(c, &apperrors.AppError{
				Code:       "STORE_UNAVAILABLE",
				Message:    "Database unreachable",
				StatusCode: http.StatusServiceUnavailable,
				Internal:   err,
			})
			return
		}
	}
	response.Message(c, "Server is running", HealthResponse{Status: "ok", Timestamp: time.Now().UTC()})
}

// Index describes the API's entry points.
func (h *SystemHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Expense Tracker API",
		"version": "1.0.0",
		"endpoints": gin.H{
			"expenses":   "/api/expenses",
			"categories": "/api/categories",
			"dashboard":  "/api/dashboard",
			"receipts":   "/api/receipts",
			"health":     "/api/health",
			"docs":       "/swagger/index.html",
		},
	})
}
