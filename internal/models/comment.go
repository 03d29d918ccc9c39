package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecipeComment struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;index"`
	UserID    string    `gorm:"type:varchar(64);not null;index"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time

	User User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (c *RecipeComment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
