package database

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/pageza/recipe-tracker/backend/internal/models"
)

// Models lists every persisted entity in dependency order.
func Models() []any {
	return []any{
		&models.User{},
		&models.RecipeType{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.RecipeStep{},
		&models.RecipeComment{},
		&models.UserSavedRecipe{},
	}
}

// RunMigrations brings the schema up to date, including foreign keys and the
// unique (user_id, recipe_id) index on saved recipes.
func RunMigrations(db *gorm.DB) error {
	slog.Info("running schema migrations", "dialect", db.Dialector.Name())
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
