package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-tracker/backend/internal/models"
)

// UserProvisioner creates local users on demand.
type UserProvisioner interface {
	EnsureUser(ctx context.Context, id, username string) (*models.User, error)
}

// ProvisionUser makes sure an authenticated caller has a local user row
// before the handler runs. It must be installed after AuthMiddleware.
func ProvisionUser(p UserProvisioner) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := UserID(c)
		if !ok {
			abortWithMessage(c, http.StatusUnauthorized, "user not authenticated")
			return
		}

		if _, err := p.EnsureUser(c.Request.Context(), id, c.GetString(ContextUsername)); err != nil {
			slog.ErrorContext(c.Request.Context(), "failed to provision user", "user_id", id, "error", err)
			abortWithMessage(c, http.StatusInternalServerError, "internal server error")
			return
		}
		c.Next()
	}
}
