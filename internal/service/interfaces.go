package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/pageza/recipe-tracker/backend/internal/models"
	"github.com/pageza/recipe-tracker/backend/internal/types"
)

// IRecipeService is the recipe aggregate store: recipes with their ingredients
// and steps, comments, and per-user saved recipes.
type IRecipeService interface {
	ListRecipes(ctx context.Context) ([]types.RecipeView, error)
	ListUserRecipes(ctx context.Context, userID string) ([]types.RecipeView, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*types.RecipeView, error)
	CreateRecipe(ctx context.Context, input types.RecipeInput, ownerID string) (*types.RecipeView, error)
	UpdateRecipe(ctx context.Context, id uuid.UUID, input types.RecipeInput, requesterID string) (*types.RecipeView, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID, requesterID string) error
	ToggleSavedRecipe(ctx context.Context, recipeID uuid.UUID, userID string) (bool, error)
	SavedRecipeIDs(ctx context.Context, userID string) ([]uuid.UUID, error)
	AddComment(ctx context.Context, userID, text string, recipeID uuid.UUID) (*types.CommentView, error)
	DeleteComment(ctx context.Context, commentID uuid.UUID, userID string) error
}

// IRecipeTypeService is CRUD over recipe types.
type IRecipeTypeService interface {
	ListRecipeTypes(ctx context.Context) ([]models.RecipeType, error)
	GetRecipeType(ctx context.Context, id uuid.UUID) (*models.RecipeType, error)
	CreateRecipeType(ctx context.Context, req types.RecipeTypeRequest) (*models.RecipeType, error)
	UpdateRecipeType(ctx context.Context, id uuid.UUID, req types.RecipeTypeRequest) (*models.RecipeType, error)
	DeleteRecipeType(ctx context.Context, id uuid.UUID) error
}

// IUserService provisions local users for identity-provider accounts.
type IUserService interface {
	EnsureUser(ctx context.Context, id, username string) (*models.User, error)
}

// IIdentityService validates identity-provider session tokens.
type IIdentityService interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IRecipeImageService stores recipe images.
type IRecipeImageService interface {
	UploadRecipeImage(ctx context.Context, recipeID uuid.UUID, requesterID string, body io.Reader, size int64, contentType string) (*types.RecipeView, error)
}

// ObjectStore is the slice of S3 the image service needs.
type ObjectStore interface {
	PutObject(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

var (
	_ IRecipeService      = (*RecipeService)(nil)
	_ IRecipeTypeService  = (*RecipeTypeService)(nil)
	_ IUserService        = (*UserService)(nil)
	_ IIdentityService    = (*IdentityService)(nil)
	_ IRecipeImageService = (*RecipeImageService)(nil)
)
