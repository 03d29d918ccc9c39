package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-tracker/backend/internal/mocks"
	"github.com/pageza/recipe-tracker/backend/internal/models"
	"github.com/pageza/recipe-tracker/backend/internal/testhelpers"
	"github.com/pageza/recipe-tracker/backend/internal/types"
)

func TestCreateRecipe(t *testing.T) {
	env := setupTestEnv(t)
	rt := testhelpers.CreateRecipeType(t, env.db, "Dinner")
	token := env.token(t, "user_1", "chef_mario")

	w, body := env.do(t, http.MethodPost, "/api/v1/recipes/create", token, recipePayload(rt.ID.String()))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, body.Success)
	assert.Equal(t, "Recipe created succesfully", body.Message)

	var recipe types.RecipeView
	decodeData(t, body, &recipe)
	assert.Equal(t, []string{"a", "b"}, recipe.Ingredients)
	assert.Equal(t, []string{"s1"}, recipe.Steps)
	assert.Equal(t, "user_1", recipe.UserID)
	assert.Nil(t, recipe.OvenTemp)

	w, body = env.do(t, http.MethodGet, "/api/v1/recipes/"+recipe.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Recipe retrieved successfully", body.Message)
	var fetched types.RecipeView
	decodeData(t, body, &fetched)
	assert.Equal(t, recipe.Ingredients, fetched.Ingredients)
	assert.Equal(t, recipe.Steps, fetched.Steps)
}

func TestCreateRecipeProvisionsUser(t *testing.T) {
	env := setupTestEnv(t)
	rt := testhelpers.CreateRecipeType(t, env.db, "Dinner")

	assert.Zero(t, testhelpers.CountRows(t, env.db, &models.User{}, "id = ?", "user_9"))
	w, _ := env.do(t, http.MethodPost, "/api/v1/recipes/create", env.token(t, "user_9", "new_cook"), recipePayload(rt.ID.String()))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 1, testhelpers.CountRows(t, env.db, &models.User{}, "id = ? AND username = ?", "user_9", "new_cook"))
}

func TestCreateRecipeValidation(t *testing.T) {
	env := setupTestEnv(t)
	rt := testhelpers.CreateRecipeType(t, env.db, "Dinner")
	token := env.token(t, "user_1", "chef_mario")

	tests := []struct {
		name    string
		mutate  func(map[string]any)
		message string
	}{
		{"empty ingredients", func(p map[string]any) { p["ingredients"] = []string{} }, "ingredients must have atleast 1 items"},
		{"empty steps", func(p map[string]any) { p["steps"] = []string{} }, "steps must have atleast 1 items"},
		{"missing name", func(p map[string]any) { delete(p, "name") }, "name is required"},
		{"blank name", func(p map[string]any) { p["name"] = "   " }, "name cannot be empty"},
		{"missing ingredients", func(p map[string]any) { delete(p, "ingredients") }, "ingredients is required"},
		{"servings not a number", func(p map[string]any) { p["servings"] = "two" }, "servings must be a number"},
		{"missing prep time", func(p map[string]any) { delete(p, "prepTime") }, "prepTime is required"},
		{"bad recipe type", func(p map[string]any) { p["recipeTypeId"] = "nope" }, "recipeTypeId must be a valid id"},
		{"blank step", func(p map[string]any) { p["steps"] = []string{"ok", " "} }, "steps[1] cannot be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := recipePayload(rt.ID.String())
			tt.mutate(payload)

			w, body := env.do(t, http.MethodPost, "/api/v1/recipes/create", token, payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Message)
		})
	}
	assert.Zero(t, testhelpers.CountRows(t, env.db, &models.Recipe{}, "1 = 1"))
}

func TestCreateRecipeUnknownType(t *testing.T) {
	env := setupTestEnv(t)

	w, body := env.do(t, http.MethodPost, "/api/v1/recipes/create", env.token(t, "user_1", "chef_mario"), recipePayload(uuid.NewString()))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, body.Success)
	assert.Contains(t, body.Message, "recipe type")
}

func TestCreateRecipeRequiresAuth(t *testing.T) {
	env := setupTestEnv(t)
	rt := testhelpers.CreateRecipeType(t, env.db, "Dinner")

	w, body := env.do(t, http.MethodPost, "/api/v1/recipes/create", "", recipePayload(rt.ID.String()))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, body.Success)

	w, _ = env.do(t, http.MethodPost, "/api/v1/recipes/create", "forged.token.value", recipePayload(rt.ID.String()))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetRecipeNotFound(t *testing.T) {
	env := setupTestEnv(t)

	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		w, body := env.do(t, http.MethodGet, "/api/v1/recipes/"+id, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.False(t, body.Success)
		assert.Equal(t, "Recipe not found", body.Message)
	}
}

func TestListRecipes(t *testing.T) {
	env := setupTestEnv(t)
	rt := testhelpers.CreateRecipeType(t, env.db, "Dinner")

	w, body := env.do(t, http.MethodGet, "/api/v1/recipes", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(body.Data))

	for _, user := range []string{"user_1", "user_2"} {
		w, _ := env.do(t, http.MethodPost, "/api/v1/recipes/create", env.token(t, user, user), recipePayload(rt.ID.String()))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, body = env.do(t, http.MethodGet, "/api/v1/recipes", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Recipes retrieved successfully", body.Message)
	var all []types.RecipeView
	decodeData(t, body, &all)
	assert.Len(t, all, 2)

	w, body = env.do(t, http.MethodGet, "/api/v1/user-recipes", env.token(t, "user_2", "user_2"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []types.RecipeView
	decodeData(t, body, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, "user_2", mine[0].UserID)
}

func TestUpdateRecipe(t *testing.T) {
	env := setupTestEnv(t)
	rt := testhelpers.CreateRecipeType(t, env.db, "Dinner")
	owner := env.token(t, "user_1", "chef_mario")

	_, body := env.do(t, http.MethodPost, "/api/v1/recipes/create", owner, recipePayload(rt.ID.String()))
	var created types.RecipeView
	decodeData(t, body, &created)
	path := "/api/v1/recipes/update/" + created.ID.String()

	payload := recipePayload(rt.ID.String())
	payload["name"] = "Better"
	payload["ovenTemp"] = 200
	payload["ingredients"] = []string{"c"}
	payload["steps"] = []string{"s2", "s3"}

	w, body := env.do(t, http.MethodPut, path, env.token(t, "user_2", "baker_emma"), payload)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, body.Success)

	w, body = env.do(t, http.MethodPut, path, owner, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Recipe updated succesfully", body.Message)
	var updated types.RecipeView
	decodeData(t, body, &updated)
	assert.Equal(t, "Better", updated.Name)
	assert.Equal(t, []string{"c"}, updated.Ingredients)
	assert.Equal(t, []string{"s2", "s3"}, updated.Steps)
	require.NotNil(t, updated.OvenTemp)
	assert.Equal(t, 200, *updated.OvenTemp)

	w, _ = env.do(t, http.MethodPut, "/api/v1/recipes/update/"+uuid.NewString(), owner, payload)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteRecipe(t *testing.T) {
	env := setupTestEnv(t)
	rt := testhelpers.CreateRecipeType(t, env.db, "Dinner")
	owner := env.token(t, "user_1", "chef_mario")

	_, body := env.do(t, http.MethodPost, "/api/v1/recipes/create", owner, recipePayload(rt.ID.String()))
	var created types.RecipeView
	decodeData(t, body, &created)
	path := "/api/v1/recipes/delete/" + created.ID.String()

	w, _ := env.do(t, http.MethodDelete, path, env.token(t, "user_2", "baker_emma"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body = env.do(t, http.MethodDelete, path, owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Recipe deleted succesfully", body.Message)

	w, _ = env.do(t, http.MethodGet, "/api/v1/recipes/"+created.ID.String(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = env.do(t, http.MethodDelete, path, owner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, testhelpers.CountRows(t, env.db, &models.RecipeIngredient{}, "recipe_id = ?", created.ID))
}

func TestToggleSavedRecipe(t *testing.T) {
	env := setupTestEnv(t)
	rt := testhelpers.CreateRecipeType(t, env.db, "Dinner")
	token := env.token(t, "user_1", "chef_mario")

	_, body := env.do(t, http.MethodPost, "/api/v1/recipes/create", token, recipePayload(rt.ID.String()))
	var created types.RecipeView
	decodeData(t, body, &created)
	path := "/api/v1/user-saved-recipes/" + created.ID.String()

	w, body := env.do(t, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var result types.SavedToggleResult
	decodeData(t, body, &result)
	assert.True(t, result.Saved)
	assert.Equal(t, created.ID, result.RecipeID)

	w, body = env.do(t, http.MethodGet, "/api/v1/user-saved-recipes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ids []uuid.UUID
	decodeData(t, body, &ids)
	assert.Equal(t, []uuid.UUID{created.ID}, ids)

	_, body = env.do(t, http.MethodPost, path, token, nil)
	decodeData(t, body, &result)
	assert.False(t, result.Saved)
	assert.Equal(t, "Recipe unsaved successfully", body.Message)

	_, body = env.do(t, http.MethodGet, "/api/v1/user-saved-recipes", token, nil)
	assert.JSONEq(t, `[]`, string(body.Data))

	w, _ = env.do(t, http.MethodPost, "/api/v1/user-saved-recipes/"+uuid.NewString(), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func newMockRouter(recipes *mocks.MockRecipeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router, Dependencies{Recipes: recipes})
	return router
}

func TestGetRecipeStoreFailure(t *testing.T) {
	recipes := new(mocks.MockRecipeService)
	recipes.On("GetRecipe", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil, errors.New("connection refused"))

	w, body := doRequest(t, newMockRouter(recipes), http.MethodGet, "/api/v1/recipes/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, body.Success)
	assert.Equal(t, "internal server error", body.Message)
	assert.NotContains(t, w.Body.String(), "connection refused")
	recipes.AssertExpectations(t)
}

func TestListRecipesTimeout(t *testing.T) {
	recipes := new(mocks.MockRecipeService)
	recipes.On("ListRecipes", mock.Anything).Return(nil, context.DeadlineExceeded)

	w, body := doRequest(t, newMockRouter(recipes), http.MethodGet, "/api/v1/recipes", "", nil)
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Equal(t, "request timed out", body.Message)
}

func TestListRecipesClientCanceled(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	recipes := new(mocks.MockRecipeService)
	recipes.On("ListRecipes", mock.Anything).Return(nil, fmt.Errorf("failed to list recipes: %w", context.Canceled))

	w, body := doRequest(t, newMockRouter(recipes), http.MethodGet, "/api/v1/recipes", "", nil)
	assert.Equal(t, 499, w.Code)
	assert.Equal(t, "request canceled", body.Message)
	assert.Contains(t, logs.String(), `"level":"DEBUG"`)
	assert.NotContains(t, logs.String(), `"level":"ERROR"`)
}
