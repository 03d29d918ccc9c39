package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipe-tracker/backend/internal/database"
	"github.com/pageza/recipe-tracker/backend/internal/service"
	"github.com/pageza/recipe-tracker/backend/internal/testhelpers"
)

const testSecret = "test-identity-secret"

type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	identity *service.IdentityService
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupSQLite(t)
	identity := service.NewIdentityService(testSecret, "")

	router := gin.New()
	RegisterRoutes(router, Dependencies{
		Recipes:     service.NewRecipeService(db),
		RecipeTypes: service.NewRecipeTypeService(db),
		Users:       service.NewUserService(db),
		Identity:    identity,
		Ping:        func(ctx context.Context) error { return database.HealthCheck(ctx, db) },
	})

	return &testEnv{router: router, db: db, identity: identity}
}

func (e *testEnv) token(t *testing.T, userID, username string) string {
	t.Helper()
	token, err := e.identity.GenerateToken(userID, username, time.Hour)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	return doRequest(t, e.router, method, path, token, body)
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") != "" && json.Valid(w.Body.Bytes()) {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func decodeData(t *testing.T, env envelope, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func recipePayload(typeID string) map[string]any {
	return map[string]any{
		"name":         "Test",
		"description":  "d",
		"servings":     2,
		"prepTime":     5,
		"cookTime":     5,
		"recipeTypeId": typeID,
		"ingredients":  []string{"a", "b"},
		"steps":        []string{"s1"},
	}
}
