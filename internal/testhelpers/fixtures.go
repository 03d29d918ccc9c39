package testhelpers

import (
	"testing"

	"gorm.io/gorm"

	"github.com/pageza/recipe-tracker/backend/internal/models"
)

// CreateUser inserts a local user row.
func CreateUser(t *testing.T, db *gorm.DB, id, username string) *models.User {
	t.Helper()
	user := &models.User{ID: id, Username: username}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", id, err)
	}
	return user
}

// CreateRecipeType inserts a recipe type.
func CreateRecipeType(t *testing.T, db *gorm.DB, name string) *models.RecipeType {
	t.Helper()
	rt := &models.RecipeType{Name: name, Description: name + " dishes"}
	if err := db.Create(rt).Error; err != nil {
		t.Fatalf("failed to create recipe type %s: %v", name, err)
	}
	return rt
}

// CountRows counts rows of model matching the query.
func CountRows(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Where(query, args...).Count(&n).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return n
}
