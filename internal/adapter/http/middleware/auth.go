package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mehmetymw/notion-go/pkg/notion"
)

// Auth requires the Notion-Version header and a bearer token equal to
// token.
func Auth(token string) gin.HandlerFunc {
	want := []byte("Bearer " + token)
	return func(c *gin.Context) {
		if c.GetHeader(notion.HeaderNotionVersion) == "" {
			Abort(c, http.StatusBadRequest, notion.CodeMissingVersion,
				"Notion-Version header failed validation: Notion-Version header should be defined.")
			return
		}

		got := []byte(c.GetHeader(notion.HeaderAuthorization))
		if subtle.ConstantTimeCompare(got, want) != 1 {
			Abort(c, http.StatusUnauthorized, notion.CodeUnauthorized, "API token is invalid.")
			return
		}

		c.Next()
	}
}
