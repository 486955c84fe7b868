package api

import (
	"net/http" // HTTP status codes
	"time"

	"billtracker/internal/storage" // Storage abstraction

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// HealthzHandler is the public liveness probe
func HealthzHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// ClearAllDataHandler wipes every bill, category and user. Routing must
// place this behind RequireInternalKey; it is never reachable with a bearer
// token alone.
func ClearAllDataHandler(store storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.ClearAllData(c.Request.Context()); err != nil {
			logrus.WithField("error", err.Error()).Error("data wipe failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Wipe failed"})
			return
		}
		logrus.Warn("All application data wiped via internal API")
		c.JSON(http.StatusOK, gin.H{"message": "All data cleared"})
	}
}
