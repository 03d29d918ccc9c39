package types

// RecipeRequest is the body of recipe create and update calls. Numeric fields
// are pointers so a missing value can be told apart from zero.
type RecipeRequest struct {
	Name         string   `json:"name" binding:"required,notblank,max=200"`
	Description  string   `json:"description" binding:"required,notblank"`
	Servings     *int     `json:"servings" binding:"required,min=1"`
	PrepTime     *int     `json:"prepTime" binding:"required,min=0"`
	CookTime     *int     `json:"cookTime" binding:"required,min=0"`
	RecipeTypeID string   `json:"recipeTypeId" binding:"required,uuid"`
	OvenTemp     *int     `json:"ovenTemp" binding:"omitempty,min=0"`
	Ingredients  []string `json:"ingredients" binding:"required,min=1,dive,notblank"`
	Steps        []string `json:"steps" binding:"required,min=1,dive,notblank"`
}

// RecipeTypeRequest is the body of recipe type create and update calls.
type RecipeTypeRequest struct {
	Name        string `json:"name" binding:"required,notblank,max=100"`
	Description string `json:"description" binding:"required,notblank"`
}

// CommentRequest is the body of a new comment.
type CommentRequest struct {
	RecipeID string `json:"recipeId" binding:"required,uuid"`
	Text     string `json:"text" binding:"required,notblank,max=2000"`
}
