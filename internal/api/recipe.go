package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipe-tracker/backend/internal/middleware"
	"github.com/pageza/recipe-tracker/backend/internal/service"
	"github.com/pageza/recipe-tracker/backend/internal/types"
)

// RecipeHandler serves recipes, the caller's own recipes and saved recipes.
type RecipeHandler struct {
	recipes service.IRecipeService
}

func NewRecipeHandler(recipes service.IRecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.ListRecipes(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Recipes retrieved successfully", recipes)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Recipe not found")
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if recipe == nil {
		respondError(c, http.StatusNotFound, "Recipe not found")
		return
	}
	respondSuccess(c, http.StatusOK, "Recipe retrieved successfully", recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	input, ok := bindRecipe(c)
	if !ok {
		return
	}
	userID, _ := middleware.UserID(c)

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), input, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Recipe created succesfully", recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Recipe not found")
		return
	}
	input, ok := bindRecipe(c)
	if !ok {
		return
	}
	userID, _ := middleware.UserID(c)

	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), id, input, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Recipe updated succesfully", recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Recipe not found")
		return
	}
	userID, _ := middleware.UserID(c)

	if err := h.recipes.DeleteRecipe(c.Request.Context(), id, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Recipe deleted succesfully", nil)
}

func (h *RecipeHandler) ListUserRecipes(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	recipes, err := h.recipes.ListUserRecipes(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "User recipes retrieved successfully", recipes)
}

func (h *RecipeHandler) ListSavedRecipeIDs(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	ids, err := h.recipes.SavedRecipeIDs(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Saved recipes retrieved successfully", ids)
}

func (h *RecipeHandler) ToggleSavedRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Recipe not found")
		return
	}
	userID, _ := middleware.UserID(c)

	saved, err := h.recipes.ToggleSavedRecipe(c.Request.Context(), id, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	message := "Recipe unsaved successfully"
	if saved {
		message = "Recipe saved successfully"
	}
	respondSuccess(c, http.StatusOK, message, types.SavedToggleResult{RecipeID: id, Saved: saved})
}

// bindRecipe validates the body and converts it to store input. On failure the
// 400 response has already been written.
func bindRecipe(c *gin.Context) (types.RecipeInput, bool) {
	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, bindingMessage(err))
		return types.RecipeInput{}, false
	}

	typeID, err := uuid.Parse(req.RecipeTypeID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "recipeTypeId must be a valid id")
		return types.RecipeInput{}, false
	}
	return types.RecipeInput{
		Name:         req.Name,
		Description:  req.Description,
		RecipeTypeID: typeID,
		Servings:     *req.Servings,
		PrepTime:     *req.PrepTime,
		CookTime:     *req.CookTime,
		OvenTemp:     req.OvenTemp,
		Ingredients:  req.Ingredients,
		Steps:        req.Steps,
	}, true
}
