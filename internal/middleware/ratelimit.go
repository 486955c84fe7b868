package middleware

import (
	"fmt"
	"math"
	"net/http" // HTTP status codes

	"billtracker/internal/limiter" // Rate limiter implementations

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// RateLimit counts every request against the client IP, answering 429 with a
// retry hint once the window cap is exceeded. Clients whose IP cannot be
// determined share one "unknown" bucket rather than bypassing the cap.
func RateLimit(rl limiter.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if key == "" {
			key = "unknown" // Fail-safe shared bucket, not fail-open
		}
		allowed, retryAfter, err := rl.Allow(c.Request.Context(), key)
		if err != nil {
			// A broken limiter backend must not take the API down
			logrus.WithField("error", err.Error()).Error("rate limiter unavailable")
			c.Next()
			return
		}
		if !allowed {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			c.Header("Retry-After", fmt.Sprintf("%d", seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":               "Too many requests, please try again later",
				"retry_after_seconds": seconds,
			})
			return
		}
		c.Next()
	}
}
