package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mehmetymw/notion-go/internal/port"
)

// Pinger is satisfied by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	workspace port.Workspace
	db        Pinger
}

// NewHealthHandler builds the health endpoints. db may be nil when the
// workspace is not persisted.
func NewHealthHandler(workspace port.Workspace, db Pinger) *HealthHandler {
	return &HealthHandler{workspace: workspace, db: db}
}

func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

func (h *HealthHandler) Readiness(c *gin.Context) {
	checks := make(map[string]string)

	if h.db != nil {
		if err := h.db.PingContext(c.Request.Context()); err != nil {
			checks["database"] = "unhealthy"
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "checks": checks})
			return
		}
		checks["database"] = "healthy"
	}

	if _, err := h.workspace.Bot(c.Request.Context()); err != nil {
		checks["workspace"] = "unhealthy"
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "checks": checks})
		return
	}
	checks["workspace"] = "healthy"

	c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": checks})
}
