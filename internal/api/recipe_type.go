package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipe-tracker/backend/internal/service"
	"github.com/pageza/recipe-tracker/backend/internal/types"
)

type RecipeTypeHandler struct {
	recipeTypes service.IRecipeTypeService
}

func NewRecipeTypeHandler(recipeTypes service.IRecipeTypeService) *RecipeTypeHandler {
	return &RecipeTypeHandler{recipeTypes: recipeTypes}
}

func (h *RecipeTypeHandler) ListRecipeTypes(c *gin.Context) {
	recipeTypes, err := h.recipeTypes.ListRecipeTypes(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "RecipeTypes retrieved successfully", recipeTypes)
}

func (h *RecipeTypeHandler) CreateRecipeType(c *gin.Context) {
	var req types.RecipeTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	rt, err := h.recipeTypes.CreateRecipeType(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "RecipeType created successfully", rt)
}

func (h *RecipeTypeHandler) UpdateRecipeType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "RecipeType not found")
		return
	}
	var req types.RecipeTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	rt, err := h.recipeTypes.UpdateRecipeType(c.Request.Context(), id, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "RecipeType updated successfully", rt)
}

func (h *RecipeTypeHandler) DeleteRecipeType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "RecipeType not found")
		return
	}

	if err := h.recipeTypes.DeleteRecipeType(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "RecipeType deleted successfully", nil)
}
