package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-tracker/backend/internal/models"
	"github.com/pageza/recipe-tracker/backend/internal/testhelpers"
)

func TestRecipeTypeCRUD(t *testing.T) {
	env := setupTestEnv(t)

	w, body := env.do(t, http.MethodPost, "/api/v1/recipeTypes/create", "", map[string]any{
		"name":        "main  course",
		"description": " Hearty dishes ",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.RecipeType
	decodeData(t, body, &created)
	assert.Equal(t, "main course", created.Name)
	assert.Equal(t, "Hearty dishes", created.Description)

	w, body = env.do(t, http.MethodPut, "/api/v1/recipeTypes/update/"+created.ID.String(), "", map[string]any{
		"name":        "dessert",
		"description": "Sweet",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var updated models.RecipeType
	decodeData(t, body, &updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "dessert", updated.Name)

	w, body = env.do(t, http.MethodGet, "/api/v1/recipeTypes", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "RecipeTypes retrieved successfully", body.Message)
	var all []models.RecipeType
	decodeData(t, body, &all)
	require.Len(t, all, 1)

	w, _ = env.do(t, http.MethodDelete, "/api/v1/recipeTypes/delete/"+created.ID.String(), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, body = env.do(t, http.MethodDelete, "/api/v1/recipeTypes/delete/"+created.ID.String(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "RecipeType not found", body.Message)
}

func TestRecipeTypeValidationAndConflicts(t *testing.T) {
	env := setupTestEnv(t)
	rt := testhelpers.CreateRecipeType(t, env.db, "Dinner")

	w, body := env.do(t, http.MethodPost, "/api/v1/recipeTypes/create", "", map[string]any{"name": "Lunch"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "description is required", body.Message)

	w, _ = env.do(t, http.MethodPut, "/api/v1/recipeTypes/update/"+uuid.NewString(), "", map[string]any{
		"name": "Lunch", "description": "Midday",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = env.do(t, http.MethodPost, "/api/v1/recipes/create", env.token(t, "user_1", "chef_mario"), recipePayload(rt.ID.String()))
	require.Equal(t, http.StatusCreated, w.Code)

	w, body = env.do(t, http.MethodDelete, "/api/v1/recipeTypes/delete/"+rt.ID.String(), "", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, body.Success)
}
