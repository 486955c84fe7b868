package api

import (
	"net/http" // HTTP status codes

	"billtracker/internal/middleware" // Identity accessor
	"billtracker/internal/storage"    // Storage abstraction

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// MeHandler returns the resolved identity of the caller. On the external
// identity path this is the provider's answer verbatim; on the local path it
// mirrors the stored user.
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := middleware.IdentityFrom(c)
		if identity == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusOK, identity)
	}
}

// GetUserHandler returns a user record. Callers may only read themselves;
// the ownership check runs before the lookup so a foreign ID leaks nothing,
// not even existence.
func GetUserHandler(store storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := middleware.IdentityFrom(c)
		if identity == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id := c.Param("id")
		if id != identity.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		user, err := store.GetUserByID(c.Request.Context(), id)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("user lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Lookup failed"})
			return
		}
		if user == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, user) // PasswordHash is json:"-", never serialized
	}
}
