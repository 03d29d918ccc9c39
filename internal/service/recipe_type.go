package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"

	"github.com/pageza/recipe-tracker/backend/internal/models"
	"github.com/pageza/recipe-tracker/backend/internal/types"
)

// RecipeTypeService handles recipe type reference data
type RecipeTypeService struct {
	db *gorm.DB
}

// NewRecipeTypeService creates a new RecipeTypeService instance
func NewRecipeTypeService(db *gorm.DB) *RecipeTypeService {
	return &RecipeTypeService{db: db}
}

func (s *RecipeTypeService) ListRecipeTypes(ctx context.Context) ([]models.RecipeType, error) {
	recipeTypes := []models.RecipeType{}
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&recipeTypes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipe types: %w", err)
	}
	return recipeTypes, nil
}

func (s *RecipeTypeService) GetRecipeType(ctx context.Context, id uuid.UUID) (*models.RecipeType, error) {
	var rt models.RecipeType
	if err := s.db.WithContext(ctx).First(&rt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeTypeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe type: %w", err)
	}
	return &rt, nil
}

func (s *RecipeTypeService) CreateRecipeType(ctx context.Context, req types.RecipeTypeRequest) (*models.RecipeType, error) {
	rt := models.RecipeType{
		Name:        normalizeTypeName(req.Name),
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.db.WithContext(ctx).Create(&rt).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe type: %w", err)
	}
	return &rt, nil
}

func (s *RecipeTypeService) UpdateRecipeType(ctx context.Context, id uuid.UUID, req types.RecipeTypeRequest) (*models.RecipeType, error) {
	var rt models.RecipeType
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rt, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeTypeNotFound
			}
			return fmt.Errorf("failed to get recipe type: %w", err)
		}
		rt.Name = normalizeTypeName(req.Name)
		rt.Description = strings.TrimSpace(req.Description)
		if err := tx.Save(&rt).Error; err != nil {
			return fmt.Errorf("failed to update recipe type: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

// DeleteRecipeType removes a type no recipe references. Referenced types are
// ErrRecipeTypeInUse; unknown ids are ErrRecipeTypeNotFound.
func (s *RecipeTypeService) DeleteRecipeType(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inUse int64
		if err := tx.Model(&models.Recipe{}).Where("recipe_type_id = ?", id).Count(&inUse).Error; err != nil {
			return fmt.Errorf("failed to check recipe type usage: %w", err)
		}
		if inUse > 0 {
			return ErrRecipeTypeInUse
		}

		res := tx.Delete(&models.RecipeType{}, "id = ?", id)
		if isForeignKeyViolation(res.Error) {
			return ErrRecipeTypeInUse
		}
		if res.Error != nil {
			return fmt.Errorf("failed to delete recipe type: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrRecipeTypeNotFound
		}
		return nil
	})
}

// normalizeTypeName collapses runs of whitespace and composes the name to NFC
// so visually equal names compare equal. Letter case is kept as given.
func normalizeTypeName(name string) string {
	return norm.NFC.String(strings.Join(strings.Fields(name), " "))
}
