package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mehmetymw/notion-go/pkg/logger"
	"github.com/mehmetymw/notion-go/pkg/notion"
)

// CorrelationID echoes the id the client sent, or assigns one, and stores
// it on the request context for logging.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader(notion.HeaderCorrelationID)
		if correlationID == "" {
			correlationID = uuid.NewString()
		}

		c.Header(notion.HeaderCorrelationID, correlationID)

		ctx := logger.WithCorrelationID(c.Request.Context(), correlationID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
