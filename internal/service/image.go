package service

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipe-tracker/backend/internal/models"
	"github.com/pageza/recipe-tracker/backend/internal/types"
)

// MaxImageSize is the largest recipe image accepted, in bytes.
const MaxImageSize = 5 << 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// RecipeImageService uploads recipe images to object storage and records
// their URL on the recipe.
type RecipeImageService struct {
	db    *gorm.DB
	store ObjectStore
}

// NewRecipeImageService creates a new RecipeImageService instance
func NewRecipeImageService(db *gorm.DB, store ObjectStore) *RecipeImageService {
	return &RecipeImageService{db: db, store: store}
}

// UploadRecipeImage stores body as the image of recipeID. Only the owner may
// upload. The object is written before the row is updated, so a failed
// upload leaves the recipe untouched.
func (s *RecipeImageService) UploadRecipeImage(ctx context.Context, recipeID uuid.UUID, requesterID string, body io.Reader, size int64, contentType string) (*types.RecipeView, error) {
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported content type %q", ErrInvalidImage, contentType)
	}
	if size <= 0 || size > MaxImageSize {
		return nil, fmt.Errorf("%w: size must be between 1 byte and %d bytes", ErrInvalidImage, MaxImageSize)
	}

	db := s.db.WithContext(ctx)
	recipe, err := findRecipe(db, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.UserID != requesterID {
		return nil, ErrForbidden
	}

	key := path.Join("recipes", recipeID.String(), uuid.NewString()+ext)
	url, err := s.store.PutObject(ctx, key, io.LimitReader(body, MaxImageSize), contentType)
	if err != nil {
		return nil, err
	}

	if err := db.Model(&models.Recipe{}).Where("id = ?", recipeID).Update("image_url", url).Error; err != nil {
		return nil, fmt.Errorf("failed to save image url: %w", err)
	}
	return loadRecipeView(db, recipeID)
}
