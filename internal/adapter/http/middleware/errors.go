package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mehmetymw/notion-go/pkg/notion"
)

// Abort stops the chain and writes a Notion error object.
func Abort(c *gin.Context, status int, code notion.ErrorCode, message string) {
	c.AbortWithStatusJSON(status, &notion.ErrorObject{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: uuid.NewString(),
	})
}
