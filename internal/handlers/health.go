package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

var startedAt = time.Now()

// Health reports service liveness and whether the document store answers.
func Health(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ok"
		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			status = "degraded"
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    time.Since(startedAt).Seconds(),
		})
	}
}
