package middleware

import (
	"crypto/subtle" // Constant-time comparison
	"net/http"      // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// RequireInternalKey guards destructive administrative routes. With no key
// configured the route is refused outright rather than left open.
func RequireInternalKey(internalKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if internalKey == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Administrative access is not configured"})
			return
		}
		provided := c.GetHeader(InternalKeyHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(internalKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
