package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipe-tracker/backend/internal/models"
	"github.com/pageza/recipe-tracker/backend/internal/types"
)

// RecipeService handles recipe operations. Every multi-row write runs in a
// single transaction so readers see either the old aggregate or the new one.
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// ListRecipes returns every recipe, newest first.
func (s *RecipeService) ListRecipes(ctx context.Context) ([]types.RecipeView, error) {
	return s.list(ctx, s.db.WithContext(ctx))
}

// ListUserRecipes returns the recipes owned by userID, newest first.
func (s *RecipeService) ListUserRecipes(ctx context.Context, userID string) ([]types.RecipeView, error) {
	return s.list(ctx, s.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (s *RecipeService) list(_ context.Context, query *gorm.DB) ([]types.RecipeView, error) {
	var recipes []models.Recipe
	if err := withAggregate(query).Order("created_at DESC, id").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	views := make([]types.RecipeView, 0, len(recipes))
	for i := range recipes {
		views = append(views, toRecipeView(&recipes[i]))
	}
	return views, nil
}

// GetRecipe retrieves a recipe by ID. A missing recipe yields (nil, nil) so
// callers can tell it apart from a failing store.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*types.RecipeView, error) {
	view, err := loadRecipeView(s.db.WithContext(ctx), id)
	if errors.Is(err, ErrRecipeNotFound) {
		return nil, nil
	}
	return view, err
}

// CreateRecipe inserts the recipe and its ingredients and steps atomically.
func (s *RecipeService) CreateRecipe(ctx context.Context, input types.RecipeInput, ownerID string) (*types.RecipeView, error) {
	if err := validateRecipeInput(input); err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		Name:         input.Name,
		Description:  input.Description,
		RecipeTypeID: input.RecipeTypeID,
		Servings:     input.Servings,
		PrepTime:     input.PrepTime,
		CookTime:     input.CookTime,
		OvenTemp:     input.OvenTemp,
		UserID:       ownerID,
	}

	var view *types.RecipeView
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireRecipeType(tx, input.RecipeTypeID); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&recipe).Error; err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: recipe type %s", ErrReferentialIntegrity, input.RecipeTypeID)
			}
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		if err := insertChildren(tx, recipe.ID, input); err != nil {
			return err
		}

		var err error
		view, err = loadRecipeView(tx, recipe.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "recipe created", "recipe_id", recipe.ID, "user_id", ownerID)
	return view, nil
}

// UpdateRecipe replaces the scalar fields and both child collections of a
// recipe. Old ingredient and step rows are deleted, never merged, so their ids
// do not survive an update.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, input types.RecipeInput, requesterID string) (*types.RecipeView, error) {
	if err := validateRecipeInput(input); err != nil {
		return nil, err
	}

	var view *types.RecipeView
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := lockRecipe(tx, id)
		if err != nil {
			return err
		}
		if recipe.UserID != requesterID {
			return ErrForbidden
		}
		if err := requireRecipeType(tx, input.RecipeTypeID); err != nil {
			return err
		}

		if err := tx.Model(recipe).Omit(clause.Associations).Updates(map[string]any{
			"name":           input.Name,
			"description":    input.Description,
			"recipe_type_id": input.RecipeTypeID,
			"servings":       input.Servings,
			"prep_time":      input.PrepTime,
			"cook_time":      input.CookTime,
			"oven_temp":      input.OvenTemp,
		}).Error; err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: recipe type %s", ErrReferentialIntegrity, input.RecipeTypeID)
			}
			return fmt.Errorf("failed to update recipe: %w", err)
		}

		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return fmt.Errorf("failed to delete ingredients: %w", err)
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeStep{}).Error; err != nil {
			return fmt.Errorf("failed to delete steps: %w", err)
		}
		if err := insertChildren(tx, id, input); err != nil {
			return err
		}

		view, err = loadRecipeView(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "recipe updated", "recipe_id", id, "user_id", requesterID)
	return view, nil
}

// DeleteRecipe removes a recipe with its ingredients, steps, comments and
// saved links. Deleting an id that does not exist is ErrRecipeNotFound.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID, requesterID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := lockRecipe(tx, id)
		if err != nil {
			return err
		}
		if recipe.UserID != requesterID {
			return ErrForbidden
		}

		// Children go first so this works even where FK cascades are off.
		for _, child := range []any{
			&models.RecipeComment{},
			&models.UserSavedRecipe{},
			&models.RecipeIngredient{},
			&models.RecipeStep{},
		} {
			if err := tx.Where("recipe_id = ?", id).Delete(child).Error; err != nil {
				return fmt.Errorf("failed to delete recipe children: %w", err)
			}
		}

		if err := tx.Delete(&models.Recipe{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "recipe deleted", "recipe_id", id, "user_id", requesterID)
	return nil
}

func withAggregate(db *gorm.DB) *gorm.DB {
	byInsertion := func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }
	return db.
		Preload("Ingredients", byInsertion).
		Preload("Steps", byInsertion).
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		Preload("Comments.User")
}

func loadRecipeView(db *gorm.DB, id uuid.UUID) (*types.RecipeView, error) {
	var recipe models.Recipe
	if err := withAggregate(db).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	view := toRecipeView(&recipe)
	return &view, nil
}

// lockRecipe reads a recipe inside tx, taking a row lock where the dialect has one.
func lockRecipe(tx *gorm.DB, id uuid.UUID) (*models.Recipe, error) {
	if tx.Dialector.Name() == "postgres" {
		return findRecipe(tx.Clauses(clause.Locking{Strength: "UPDATE"}), id)
	}
	return findRecipe(tx, id)
}

func findRecipe(db *gorm.DB, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := db.First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return &recipe, nil
}

func requireRecipe(tx *gorm.DB, id uuid.UUID) error {
	var n int64
	if err := tx.Model(&models.Recipe{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("failed to check recipe: %w", err)
	}
	if n == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

func requireRecipeType(tx *gorm.DB, id uuid.UUID) error {
	var n int64
	if err := tx.Model(&models.RecipeType{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("failed to check recipe type: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: recipe type %s", ErrReferentialIntegrity, id)
	}
	return nil
}

func insertChildren(tx *gorm.DB, recipeID uuid.UUID, input types.RecipeInput) error {
	ingredients := make([]models.RecipeIngredient, len(input.Ingredients))
	for i, d := range input.Ingredients {
		ingredients[i] = models.RecipeIngredient{RecipeID: recipeID, Description: d}
	}
	steps := make([]models.RecipeStep, len(input.Steps))
	for i, d := range input.Steps {
		steps[i] = models.RecipeStep{RecipeID: recipeID, Description: d}
	}

	if err := tx.Create(&ingredients).Error; err != nil {
		return fmt.Errorf("failed to create ingredients: %w", err)
	}
	if err := tx.Create(&steps).Error; err != nil {
		return fmt.Errorf("failed to create steps: %w", err)
	}
	return nil
}

func validateRecipeInput(input types.RecipeInput) error {
	switch {
	case strings.TrimSpace(input.Name) == "":
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidRecipe)
	case input.RecipeTypeID == uuid.Nil:
		return fmt.Errorf("%w: recipeTypeId is required", ErrInvalidRecipe)
	case input.Servings < 1:
		return fmt.Errorf("%w: servings must be at least 1", ErrInvalidRecipe)
	case input.PrepTime < 0 || input.CookTime < 0:
		return fmt.Errorf("%w: times cannot be negative", ErrInvalidRecipe)
	case len(input.Ingredients) == 0:
		return fmt.Errorf("%w: ingredients must have atleast 1 items", ErrInvalidRecipe)
	case len(input.Steps) == 0:
		return fmt.Errorf("%w: steps must have atleast 1 items", ErrInvalidRecipe)
	}
	for _, list := range [][]string{input.Ingredients, input.Steps} {
		for _, item := range list {
			if strings.TrimSpace(item) == "" {
				return fmt.Errorf("%w: ingredients and steps cannot contain empty entries", ErrInvalidRecipe)
			}
		}
	}
	return nil
}

func toRecipeView(r *models.Recipe) types.RecipeView {
	view := types.RecipeView{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		RecipeTypeID: r.RecipeTypeID,
		Servings:     r.Servings,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		OvenTemp:     r.OvenTemp,
		ImageURL:     r.ImageURL,
		UserID:       r.UserID,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		Ingredients:  make([]string, 0, len(r.Ingredients)),
		Steps:        make([]string, 0, len(r.Steps)),
		Comments:     make([]types.CommentView, 0, len(r.Comments)),
	}
	for _, i := range r.Ingredients {
		view.Ingredients = append(view.Ingredients, i.Description)
	}
	for _, st := range r.Steps {
		view.Steps = append(view.Steps, st.Description)
	}
	for i := range r.Comments {
		view.Comments = append(view.Comments, toCommentView(&r.Comments[i]))
	}
	return view
}

func toCommentView(c *models.RecipeComment) types.CommentView {
	return types.CommentView{
		ID:        c.ID,
		Username:  c.User.Username,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}
