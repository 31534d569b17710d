package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mehmetymw/notion-go/internal/adapter/http/middleware"
	"github.com/mehmetymw/notion-go/internal/port"
	"github.com/mehmetymw/notion-go/pkg/notion"
)

type RouterDeps struct {
	Workspace   port.Workspace
	Stats       StatsSource // serves /metrics when set
	DB          Pinger
	Store       BreakerReporter
	Token       string
	RateLimit   float64
	Burst       int
	ServiceName string
	Logger      *zap.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.ServiceName == "" {
		deps.ServiceName = "notion-fake"
	}

	r.Use(gin.Recovery())
	r.Use(middleware.CorrelationID())
	r.Use(middleware.Tracing(deps.ServiceName))
	r.Use(middleware.Logging(deps.Logger))

	health := NewHealthHandler(deps.Workspace, deps.DB)
	users := NewUserHandler(deps.Workspace)
	search := NewSearchHandler(deps.Workspace)
	pages := NewPageHandler(deps.Workspace)
	databases := NewDatabaseHandler(deps.Workspace)
	blocks := NewBlockHandler(deps.Workspace)
	comments := NewCommentHandler(deps.Workspace)

	r.GET("/health", health.Liveness)
	r.GET("/health/ready", health.Readiness)
	if deps.Stats != nil {
		r.GET("/metrics", NewMetricsHandler(deps.Stats, deps.Store).GetMetrics)
	}

	r.NoRoute(func(c *gin.Context) {
		middleware.Abort(c, http.StatusBadRequest, notion.CodeInvalidRequestURL, "Invalid request URL.")
	})

	v1 := r.Group("/v1")
	v1.Use(middleware.Auth(deps.Token))
	if deps.RateLimit > 0 {
		v1.Use(middleware.RateLimit(deps.RateLimit, deps.Burst))
	}
	{
		v1.GET("/users/me", users.Me)
		v1.GET("/users/:id", users.GetByID)
		v1.GET("/users", users.List)

		v1.POST("/search", search.Search)

		v1.POST("/pages", pages.Create)
		v1.GET("/pages/:id", pages.GetByID)
		v1.PATCH("/pages/:id", pages.Update)

		v1.POST("/databases", databases.Create)
		v1.GET("/databases/:id", databases.GetByID)
		v1.PATCH("/databases/:id", databases.Update)
		v1.POST("/databases/:id/query", databases.Query)

		v1.GET("/blocks/:id", blocks.GetByID)
		v1.PATCH("/blocks/:id", blocks.Update)
		v1.DELETE("/blocks/:id", blocks.Delete)
		v1.GET("/blocks/:id/children", blocks.Children)
		v1.PATCH("/blocks/:id/children", blocks.AppendChildren)

		v1.GET("/comments", comments.List)
		v1.POST("/comments", comments.Create)
	}

	return r
}
