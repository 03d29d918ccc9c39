package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-tracker/backend/internal/models"
	"github.com/pageza/recipe-tracker/backend/internal/testhelpers"
)

func TestToggleSavedRecipe(t *testing.T) {
	svc, _, rt := setupRecipeService(t)
	ctx := context.Background()

	recipe, err := svc.CreateRecipe(ctx, sampleInput(rt.ID), "user_1")
	require.NoError(t, err)

	for i := 1; i <= 5; i++ {
		saved, err := svc.ToggleSavedRecipe(ctx, recipe.ID, "user_2")
		require.NoError(t, err)
		assert.Equal(t, i%2 == 1, saved, "toggle #%d", i)

		ids, err := svc.SavedRecipeIDs(ctx, "user_2")
		require.NoError(t, err)
		if i%2 == 1 {
			assert.Equal(t, []uuid.UUID{recipe.ID}, ids)
		} else {
			assert.Empty(t, ids)
		}
	}
}

func TestToggleSavedRecipeUnknownRecipe(t *testing.T) {
	svc, db, _ := setupRecipeService(t)

	_, err := svc.ToggleSavedRecipe(context.Background(), uuid.New(), "user_1")
	assert.ErrorIs(t, err, ErrRecipeNotFound)
	assert.Zero(t, testhelpers.CountRows(t, db, &models.UserSavedRecipe{}, "1 = 1"))
}

func TestToggleSavedRecipeConcurrent(t *testing.T) {
	svc, db, rt := setupRecipeService(t)
	ctx := context.Background()

	recipe, err := svc.CreateRecipe(ctx, sampleInput(rt.ID), "user_1")
	require.NoError(t, err)

	const calls = 7
	var wg sync.WaitGroup
	errs := make(chan error, calls)
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ToggleSavedRecipe(ctx, recipe.ID, "user_2")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	// An odd number of serialized toggles ends saved, and never duplicated.
	assert.EqualValues(t, 1, testhelpers.CountRows(t, db, &models.UserSavedRecipe{}, "user_id = ? AND recipe_id = ?", "user_2", recipe.ID))
}

func TestSavedRecipeIDsPerUser(t *testing.T) {
	svc, _, rt := setupRecipeService(t)
	ctx := context.Background()

	r1, err := svc.CreateRecipe(ctx, sampleInput(rt.ID), "user_1")
	require.NoError(t, err)
	r2, err := svc.CreateRecipe(ctx, sampleInput(rt.ID), "user_1")
	require.NoError(t, err)

	_, err = svc.ToggleSavedRecipe(ctx, r1.ID, "user_1")
	require.NoError(t, err)
	_, err = svc.ToggleSavedRecipe(ctx, r2.ID, "user_1")
	require.NoError(t, err)
	_, err = svc.ToggleSavedRecipe(ctx, r2.ID, "user_2")
	require.NoError(t, err)

	ids, err := svc.SavedRecipeIDs(ctx, "user_1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{r1.ID, r2.ID}, ids)

	ids, err = svc.SavedRecipeIDs(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}
