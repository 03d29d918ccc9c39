// Package integration runs the HTTP API against a real PostgreSQL server.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipe-tracker/backend/config"
	"github.com/pageza/recipe-tracker/backend/internal/models"
	"github.com/pageza/recipe-tracker/backend/internal/server"
	"github.com/pageza/recipe-tracker/backend/internal/service"
	"github.com/pageza/recipe-tracker/backend/internal/testhelpers"
	"github.com/pageza/recipe-tracker/backend/internal/types"
)

const secret = "integration-secret"

type harness struct {
	handler http.Handler
	db      *gorm.DB
	token   string
}

func setup(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupPostgres(t)
	cfg := &config.Config{
		Environment:     config.Test,
		ServerHost:      "127.0.0.1",
		ServerPort:      "0",
		RequestTimeout:  10 * time.Second,
		ShutdownTimeout: time.Second,
		IdentitySecret:  secret,
		RateLimitWindow: time.Minute,
		RateLimitMax:    1000,
	}

	token, err := service.NewIdentityService(secret, "").GenerateToken("user_1", "chef_mario", time.Hour)
	require.NoError(t, err)

	return &harness{handler: server.New(cfg, db, server.Options{}).Handler(), db: db, token: token}
}

func (h *harness) do(t *testing.T, method, path string, body any) (int, types.Response, json.RawMessage) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.token)

	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, req)

	var raw struct {
		types.Response
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw), w.Body.String())
	return w.Code, raw.Response, raw.Data
}

func (h *harness) createRecipe(t *testing.T) types.RecipeView {
	t.Helper()
	rt := testhelpers.CreateRecipeType(t, h.db, "Dinner")

	status, _, data := h.do(t, http.MethodPost, "/api/v1/recipes/create", map[string]any{
		"name":         "Test",
		"description":  "d",
		"servings":     2,
		"prepTime":     5,
		"cookTime":     5,
		"recipeTypeId": rt.ID.String(),
		"ingredients":  []string{"a", "b"},
		"steps":        []string{"s1"},
	})
	require.Equal(t, http.StatusCreated, status)

	var recipe types.RecipeView
	require.NoError(t, json.Unmarshal(data, &recipe))
	return recipe
}

func TestRecipeLifecycle(t *testing.T) {
	h := setup(t)
	recipe := h.createRecipe(t)
	assert.Equal(t, []string{"a", "b"}, recipe.Ingredients)
	assert.Equal(t, []string{"s1"}, recipe.Steps)

	status, _, data := h.do(t, http.MethodPut, "/api/v1/recipes/update/"+recipe.ID.String(), map[string]any{
		"name":         "Test",
		"description":  "d",
		"servings":     2,
		"prepTime":     5,
		"cookTime":     5,
		"recipeTypeId": recipe.RecipeTypeID.String(),
		"ingredients":  []string{"z", "y", "x"},
		"steps":        []string{"s2"},
	})
	require.Equal(t, http.StatusCreated, status)
	var updated types.RecipeView
	require.NoError(t, json.Unmarshal(data, &updated))
	assert.Equal(t, []string{"z", "y", "x"}, updated.Ingredients)

	status, _, _ = h.do(t, http.MethodDelete, "/api/v1/recipes/delete/"+recipe.ID.String(), nil)
	require.Equal(t, http.StatusOK, status)

	status, body, _ := h.do(t, http.MethodGet, "/api/v1/recipes/"+recipe.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, body.Success)
	assert.Zero(t, testhelpers.CountRows(t, h.db, &models.RecipeIngredient{}, "recipe_id = ?", recipe.ID))
}

// Concurrent toggles all succeed and never leave duplicate links behind.
func TestConcurrentToggles(t *testing.T) {
	h := setup(t)
	recipe := h.createRecipe(t)
	path := "/api/v1/user-saved-recipes/" + recipe.ID.String()

	const workers = 8
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, path, nil)
			req.Header.Set("Authorization", "Bearer "+h.token)
			w := httptest.NewRecorder()
			h.handler.ServeHTTP(w, req)
			if w.Code == http.StatusOK {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	rows := testhelpers.CountRows(t, h.db, &models.UserSavedRecipe{}, "user_id = ? AND recipe_id = ?", "user_1", recipe.ID)
	assert.LessOrEqual(t, rows, int64(1))
	assert.Equal(t, workers, succeeded)
}
