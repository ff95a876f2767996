package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/slowerai/backend/pkg/logger"
)

const (
	statusHealthy     = "healthy"
	databaseConnected = "connected"
)

// HealthChecker reports whether the database answers.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Database    string `json:"database"`
	Environment string `json:"environment"`
}

// Health endpoint
//
//	@Summary      Get server health
//	@Description  Always answers 200; the database field carries the probe outcome
//	@Tags         health
//	@Produce      json
//	@Success      200 {object} HealthResponse
//	@Router       /api/health [get]
func CreateHealthHandler(checker HealthChecker, environment string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		c.JSON(http.StatusOK, HealthResponse{
			Status:      statusHealthy,
			Timestamp:   time.Now().UTC().Format(time.RFC3339Nano),
			Database:    databaseStatus(ctx, checker),
			Environment: environment,
		})
	}
}

func databaseStatus(ctx context.Context, checker HealthChecker) string {
	if checker == nil {
		return "error: database not configured"
	}
	if err := checker.HealthCheck(ctx); err != nil {
		logger.FromContext(ctx).Warn("Database health check failed", "error", err)
		return "error: " + err.Error()
	}
	return databaseConnected
}
