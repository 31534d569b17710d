package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mehmetymw/notion-go/pkg/notion"
)

type StatsSource interface {
	Stats() map[notion.ObjectType]int
}

// BreakerReporter is satisfied by *postgres.ObjectRepo.
type BreakerReporter interface {
	BreakerState() string
}

type MetricsHandler struct {
	stats StatsSource
	store BreakerReporter
}

func NewMetricsHandler(stats StatsSource, store BreakerReporter) *MetricsHandler {
	return &MetricsHandler{stats: stats, store: store}
}

type metricsSnapshot struct {
	Objects      map[notion.ObjectType]int `json:"objects"`
	StoreBreaker string                    `json:"store_breaker,omitempty"`
}

func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	snapshot := metricsSnapshot{Objects: h.stats.Stats()}
	if h.store != nil {
		snapshot.StoreBreaker = h.store.BreakerState()
	}
	c.JSON(http.StatusOK, snapshot)
}
