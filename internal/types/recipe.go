package types

import (
	"time"

	"github.com/google/uuid"
)

// RecipeInput carries already validated recipe data into the store.
type RecipeInput struct {
	Name         string
	Description  string
	RecipeTypeID uuid.UUID
	Servings     int
	PrepTime     int
	CookTime     int
	OvenTemp     *int
	Ingredients  []string
	Steps        []string
}

// RecipeView is the denormalized read shape of a recipe: child rows flattened
// to ordered strings and comments flattened to author/text/time.
type RecipeView struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	RecipeTypeID uuid.UUID     `json:"recipeTypeId"`
	Servings     int           `json:"servings"`
	PrepTime     int           `json:"prepTime"`
	CookTime     int           `json:"cookTime"`
	OvenTemp     *int          `json:"ovenTemp"`
	ImageURL     string        `json:"imageUrl,omitempty"`
	UserID       string        `json:"userId"`
	Ingredients  []string      `json:"ingredients"`
	Steps        []string      `json:"steps"`
	Comments     []CommentView `json:"comments"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

type CommentView struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// SavedToggleResult reports the state of a saved recipe after a toggle.
type SavedToggleResult struct {
	RecipeID uuid.UUID `json:"recipeId"`
	Saved    bool      `json:"saved"`
}
