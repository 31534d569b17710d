package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mehmetymw/notion-go/pkg/logger"
	"github.com/mehmetymw/notion-go/pkg/notion"
	"github.com/mehmetymw/notion-go/pkg/tracing"
)

// Logging records one line per request. Request headers other than
// Notion-Version are never logged.
func Logging(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		ctx := c.Request.Context()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("notion_version", c.GetHeader(notion.HeaderNotionVersion)),
			zap.String("correlation_id", logger.CorrelationIDFromContext(ctx)),
			zap.String("trace_id", tracing.TraceIDFromContext(ctx)),
			zap.String("span_id", tracing.SpanIDFromContext(ctx)),
		}

		switch {
		case len(c.Errors) > 0:
			fields = append(fields, zap.String("error", c.Errors.String()))
			log.Error("fake api request", fields...)
		case c.Writer.Status() >= 400:
			log.Warn("fake api request", fields...)
		default:
			log.Info("fake api request", fields...)
		}
	}
}
