package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipe-tracker/backend/internal/models"
)

// ToggleSavedRecipe flips whether userID has saved recipeID and reports the
// resulting state.
//
// The delete is attempted first; only when it removed nothing is a row
// inserted, with ON CONFLICT DO NOTHING against the (user_id, recipe_id)
// unique index. Losing that insert to a concurrent toggle means the link is
// already present, so the result is still "saved" and no duplicate exists.
func (s *RecipeService) ToggleSavedRecipe(ctx context.Context, recipeID uuid.UUID, userID string) (bool, error) {
	var saved bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireRecipe(tx, recipeID); err != nil {
			return err
		}

		res := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.UserSavedRecipe{})
		if res.Error != nil {
			return fmt.Errorf("failed to unsave recipe: %w", res.Error)
		}
		if res.RowsAffected > 0 {
			saved = false
			return nil
		}

		link := models.UserSavedRecipe{UserID: userID, RecipeID: recipeID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
			return fmt.Errorf("failed to save recipe: %w", err)
		}
		saved = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return saved, nil
}

// SavedRecipeIDs returns the ids of every recipe userID has saved.
func (s *RecipeService) SavedRecipeIDs(ctx context.Context, userID string) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	if err := s.db.WithContext(ctx).
		Model(&models.UserSavedRecipe{}).
		Where("user_id = ?", userID).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch saved recipes: %w", err)
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return ids, nil
}
