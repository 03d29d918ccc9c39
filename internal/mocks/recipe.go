package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-tracker/backend/internal/types"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

// ListRecipes mocks the ListRecipes method
func (m *MockRecipeService) ListRecipes(ctx context.Context) ([]types.RecipeView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeView), args.Error(1)
}

// ListUserRecipes mocks the ListUserRecipes method
func (m *MockRecipeService) ListUserRecipes(ctx context.Context, userID string) ([]types.RecipeView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeView), args.Error(1)
}

// GetRecipe mocks the GetRecipe method
func (m *MockRecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*types.RecipeView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeView), args.Error(1)
}

// CreateRecipe mocks the CreateRecipe method
func (m *MockRecipeService) CreateRecipe(ctx context.Context, input types.RecipeInput, ownerID string) (*types.RecipeView, error) {
	args := m.Called(ctx, input, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeView), args.Error(1)
}

// UpdateRecipe mocks the UpdateRecipe method
func (m *MockRecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, input types.RecipeInput, requesterID string) (*types.RecipeView, error) {
	args := m.Called(ctx, id, input, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeView), args.Error(1)
}

// DeleteRecipe mocks the DeleteRecipe method
func (m *MockRecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID, requesterID string) error {
	args := m.Called(ctx, id, requesterID)
	return args.Error(0)
}

// ToggleSavedRecipe mocks the ToggleSavedRecipe method
func (m *MockRecipeService) ToggleSavedRecipe(ctx context.Context, recipeID uuid.UUID, userID string) (bool, error) {
	args := m.Called(ctx, recipeID, userID)
	return args.Bool(0), args.Error(1)
}

// SavedRecipeIDs mocks the SavedRecipeIDs method
func (m *MockRecipeService) SavedRecipeIDs(ctx context.Context, userID string) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// AddComment mocks the AddComment method
func (m *MockRecipeService) AddComment(ctx context.Context, userID, text string, recipeID uuid.UUID) (*types.CommentView, error) {
	args := m.Called(ctx, userID, text, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.CommentView), args.Error(1)
}

// DeleteComment mocks the DeleteComment method
func (m *MockRecipeService) DeleteComment(ctx context.Context, commentID uuid.UUID, userID string) error {
	args := m.Called(ctx, commentID, userID)
	return args.Error(0)
}
