package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic in any handler into the standard 500 envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		panicRecoveries.Inc()
		slog.ErrorContext(c.Request.Context(), "panic recovered",
			"error", fmt.Sprint(recovered),
			"request_id", c.GetString(ContextRequestID),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		abortWithMessage(c, http.StatusInternalServerError, "internal server error")
	})
}

// NotFound renders unknown routes in the standard envelope.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		abortWithMessage(c, http.StatusNotFound, "route not found")
	}
}
