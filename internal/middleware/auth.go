package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"billtracker/internal/auth" // Authenticator capability

	"github.com/gin-gonic/gin" // Gin web framework
)

// identityKey is the gin context key the resolved identity is stored under.
const identityKey = "identity"

// RequireAuth validates the bearer token through the deployment's single
// Authenticator and stores the resolved identity in the context. The error
// body never discloses which check failed.
func RequireAuth(authenticator auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		identity, err := authenticator.Resolve(c.Request.Context(), tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(identityKey, identity) // Store identity in context
		c.Next()
	}
}

// IdentityFrom returns the identity stored by RequireAuth, or nil when the
// request never passed it.
func IdentityFrom(c *gin.Context) *auth.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(*auth.Identity); ok {
			return id
		}
	}
	return nil
}
