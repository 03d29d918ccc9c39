package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-tracker/backend/internal/service"
	"github.com/pageza/recipe-tracker/backend/internal/types"
)

// statusClientClosedRequest is the non-standard status recorded when the
// client went away before a response was written.
const statusClientClosedRequest = 499

func respondSuccess(c *gin.Context, status int, message string, data any) {
	c.JSON(status, types.Response{Success: true, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, types.Response{Success: false, Message: message})
}

// handleServiceError maps service errors onto HTTP statuses. Anything it does
// not recognise is logged and reported as a bare 500.
func handleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		respondError(c, http.StatusNotFound, "Recipe not found")
	case errors.Is(err, service.ErrRecipeTypeNotFound):
		respondError(c, http.StatusNotFound, "RecipeType not found")
	case errors.Is(err, service.ErrForbidden):
		respondError(c, http.StatusForbidden, "you are not the owner of this recipe")
	case errors.Is(err, service.ErrInvalidRecipe),
		errors.Is(err, service.ErrInvalidImage),
		errors.Is(err, service.ErrReferentialIntegrity):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrRecipeTypeInUse):
		respondError(c, http.StatusConflict, "RecipeType is still used by recipes")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		slog.WarnContext(ctx, "request timed out", "path", c.FullPath(), "error", err)
		respondError(c, http.StatusGatewayTimeout, "request timed out")
	case errors.Is(err, context.Canceled), errors.Is(ctx.Err(), context.Canceled):
		slog.DebugContext(ctx, "request canceled by client", "path", c.FullPath(), "error", err)
		respondError(c, statusClientClosedRequest, "request canceled")
	default:
		slog.ErrorContext(ctx, "request failed", "path", c.FullPath(), "error", err)
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}
