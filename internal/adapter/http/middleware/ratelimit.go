package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/mehmetymw/notion-go/pkg/notion"
)

// RateLimit answers with a rate_limited error object once the token bucket
// is empty.
func RateLimit(requestsPerSecond float64, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.Header("Retry-After", "1")
			Abort(c, http.StatusTooManyRequests, notion.CodeRateLimited,
				"You have been rate limited. Please try again in a few minutes.")
			return
		}
		c.Next()
	}
}
