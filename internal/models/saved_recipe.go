package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserSavedRecipe marks a recipe as bookmarked by a user. The composite unique
// index is what makes the save toggle safe under concurrent requests.
type UserSavedRecipe struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey"`
	UserID    string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_user_saved_recipe"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_saved_recipe;index"`
	CreatedAt time.Time

	User User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (s *UserSavedRecipe) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
