package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipe-tracker/backend/internal/middleware"
	"github.com/pageza/recipe-tracker/backend/internal/service"
	"github.com/pageza/recipe-tracker/backend/internal/types"
)

type CommentHandler struct {
	recipes service.IRecipeService
}

func NewCommentHandler(recipes service.IRecipeService) *CommentHandler {
	return &CommentHandler{recipes: recipes}
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req types.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}
	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "recipeId must be a valid id")
		return
	}
	userID, _ := middleware.UserID(c)

	comment, err := h.recipes.AddComment(c.Request.Context(), userID, req.Text, recipeID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Comment created successfully", comment)
}

// DeleteComment answers 200 whether or not anything was removed; only the
// author's own comments are ever deleted.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Comment not found")
		return
	}
	userID, _ := middleware.UserID(c)

	if err := h.recipes.DeleteComment(c.Request.Context(), id, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Comment deleted successfully", nil)
}
