package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing store is reachable.
type Pinger func(ctx context.Context) error

func Liveness(c *gin.Context) {
	c.String(http.StatusOK, "Got response from backend!")
}

// Health reports database reachability.
func Health(ping Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ping(c.Request.Context()); err != nil {
			slog.ErrorContext(c.Request.Context(), "health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"message": "unhealthy",
				"data":    gin.H{"database": "down"},
			})
			return
		}
		respondSuccess(c, http.StatusOK, "healthy", gin.H{"database": "up"})
	}
}
