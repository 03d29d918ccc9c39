package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipe-tracker/backend/internal/models"
	"github.com/pageza/recipe-tracker/backend/internal/types"
)

// AddComment attaches a comment by userID to recipeID. Any user may comment
// on any recipe.
func (s *RecipeService) AddComment(ctx context.Context, userID, text string, recipeID uuid.UUID) (*types.CommentView, error) {
	comment := models.RecipeComment{RecipeID: recipeID, UserID: userID, Text: text}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireRecipe(tx, recipeID); err != nil {
			return err
		}
		if err := tx.First(&comment.User, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user %s", ErrReferentialIntegrity, userID)
			}
			return fmt.Errorf("failed to get user: %w", err)
		}
		if err := tx.Omit(clause.Associations).Create(&comment).Error; err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view := toCommentView(&comment)
	return &view, nil
}

// DeleteComment removes a comment if userID wrote it. Anything else,
// including an unknown id, is a silent no-op.
func (s *RecipeService) DeleteComment(ctx context.Context, commentID uuid.UUID, userID string) error {
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", commentID, userID).
		Delete(&models.RecipeComment{}).Error; err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}
