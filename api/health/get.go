package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/reporadar-api/api/types"
)

// Get handles health check requests
// @Summary      Health check
// @Description  Reports service liveness, the audit database status and whether searches are being recorded
// @Tags         health
// @Produce      json
// @Success      200 {object} types.HealthResponse "Service healthy"
// @Failure      503 {object} types.HealthResponse "Audit database unreachable"
// @Router       /health [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := types.HealthResponse{
			Status:    types.StatusOK,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Database:  getDatabaseStatus(deps),
			Audit:     deps != nil && deps.SearchLog != nil && deps.SearchLog.Enabled(),
		}

		code := http.StatusOK
		if response.Database["status"] == "unhealthy" {
			response.Status = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, response)
	}
}

// getDatabaseStatus returns the database connection status
func getDatabaseStatus(deps *types.Dependencies) map[string]any {
	if deps == nil || deps.DB == nil || deps.DB.DB == nil {
		return map[string]any{"status": "not configured"}
	}

	if err := deps.DB.HealthCheck(); err != nil {
		return map[string]any{"status": "unhealthy", "error": err.Error()}
	}

	return map[string]any{"status": "healthy"}
}
