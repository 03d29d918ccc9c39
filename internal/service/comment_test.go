package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddComment(t *testing.T) {
	svc, _, rt := setupRecipeService(t)
	ctx := context.Background()

	recipe, err := svc.CreateRecipe(ctx, sampleInput(rt.ID), "user_1")
	require.NoError(t, err)

	first, err := svc.AddComment(ctx, "user_2", "Yummy!", recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "baker_emma", first.Username)
	assert.Equal(t, "Yummy!", first.Text)

	_, err = svc.AddComment(ctx, "user_1", "Tastes Good!", recipe.ID)
	require.NoError(t, err)

	view, err := svc.GetRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	require.Len(t, view.Comments, 2)
	assert.Equal(t, "baker_emma", view.Comments[0].Username)
	assert.Equal(t, "Yummy!", view.Comments[0].Text)
	assert.Equal(t, "chef_mario", view.Comments[1].Username)
}

func TestAddCommentErrors(t *testing.T) {
	svc, _, rt := setupRecipeService(t)
	ctx := context.Background()

	_, err := svc.AddComment(ctx, "user_1", "hello", uuid.New())
	assert.ErrorIs(t, err, ErrRecipeNotFound)

	recipe, err := svc.CreateRecipe(ctx, sampleInput(rt.ID), "user_1")
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, "ghost", "boo", recipe.ID)
	assert.ErrorIs(t, err, ErrReferentialIntegrity)
}

func TestDeleteComment(t *testing.T) {
	svc, _, rt := setupRecipeService(t)
	ctx := context.Background()

	recipe, err := svc.CreateRecipe(ctx, sampleInput(rt.ID), "user_1")
	require.NoError(t, err)
	comment, err := svc.AddComment(ctx, "user_2", "mine", recipe.ID)
	require.NoError(t, err)

	// Someone else's delete is a silent no-op.
	require.NoError(t, svc.DeleteComment(ctx, comment.ID, "user_1"))
	view, err := svc.GetRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Len(t, view.Comments, 1)

	require.NoError(t, svc.DeleteComment(ctx, uuid.New(), "user_2"))

	require.NoError(t, svc.DeleteComment(ctx, comment.ID, "user_2"))
	view, err = svc.GetRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Comments)
}
