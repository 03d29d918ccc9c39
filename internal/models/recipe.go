package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe is the aggregate root. Ingredients and Steps are owned rows that are
// replaced wholesale on update; their IDs are not stable across updates.
type Recipe struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey"`
	Name         string    `gorm:"size:200;not null"`
	Description  string    `gorm:"type:text;not null"`
	RecipeTypeID uuid.UUID `gorm:"type:varchar(36);not null;index"`
	Servings     int       `gorm:"not null"`
	PrepTime     int       `gorm:"not null"`
	CookTime     int       `gorm:"not null"`
	OvenTemp     *int
	ImageURL     string `gorm:"size:500"`
	UserID       string `gorm:"type:varchar(64);not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	RecipeType  RecipeType         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	User        User               `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Ingredients []RecipeIngredient `gorm:"constraint:OnDelete:CASCADE;"`
	Steps       []RecipeStep       `gorm:"constraint:OnDelete:CASCADE;"`
	Comments    []RecipeComment    `gorm:"constraint:OnDelete:CASCADE;"`
	SavedBy     []UserSavedRecipe  `gorm:"constraint:OnDelete:CASCADE;"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeIngredient rows are read back ordered by ID, which follows insertion order.
type RecipeIngredient struct {
	ID          uint      `gorm:"primarykey;autoIncrement"`
	RecipeID    uuid.UUID `gorm:"type:varchar(36);not null;index"`
	Description string    `gorm:"type:text;not null"`
}

// RecipeStep rows are read back ordered by ID, which follows insertion order.
type RecipeStep struct {
	ID          uint      `gorm:"primarykey;autoIncrement"`
	RecipeID    uuid.UUID `gorm:"type:varchar(36);not null;index"`
	Description string    `gorm:"type:text;not null"`
}
