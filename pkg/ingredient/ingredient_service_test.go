package ingredient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-api/domain"
	"recipe-api/internal/testutil"
)

func TestGetTopIngredients(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewIngredientService(NewIngredientRepository(db))

	author := testutil.SeedUser(t, db, "chef@example.com", "digest")
	salt := testutil.SeedIngredient(t, db, "Salt")
	egg := testutil.SeedIngredient(t, db, "Egg")
	flour := testutil.SeedIngredient(t, db, "Flour")

	testutil.SeedRecipe(t, db, testutil.RecipeSeed{Title: "Bread", AuthorID: author.ID, IngredientIDs: []uint{salt.ID, flour.ID}})
	testutil.SeedRecipe(t, db, testutil.RecipeSeed{Title: "Omelette", AuthorID: author.ID, IngredientIDs: []uint{salt.ID, egg.ID}})
	testutil.SeedRecipe(t, db, testutil.RecipeSeed{Title: "Crepe", AuthorID: author.ID, IngredientIDs: []uint{salt.ID, egg.ID, flour.ID}})

	top, err := svc.GetTopIngredients(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "Salt", top[0].Name)
	assert.Equal(t, int64(3), top[0].RecipeCount)
	// Egg and Flour tie on two recipes each.
	assert.Equal(t, "Egg", top[1].Name)
	assert.Equal(t, "Flour", top[2].Name)

	top, err = svc.GetTopIngredients(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, salt.ID, top[0].IngredientID)
}

func TestSearchIngredients(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewIngredientService(NewIngredientRepository(db))
	ctx := context.Background()

	testutil.SeedIngredient(t, db, "Tomato")
	testutil.SeedIngredient(t, db, "Cherry tomato")
	testutil.SeedIngredient(t, db, "Basil")
	testutil.SeedIngredient(t, db, "100% cocoa")

	found, err := svc.SearchIngredients(ctx, "TOMATO")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Cherry tomato", found[0].Name)
	assert.Equal(t, "Tomato", found[1].Name)

	found, err = svc.SearchIngredients(ctx, "%")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "100% cocoa", found[0].Name)

	found, err = svc.SearchIngredients(ctx, "saffron")
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = svc.SearchIngredients(ctx, "   ")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateAndGetIngredient(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewIngredientService(NewIngredientRepository(db))
	ctx := context.Background()

	created, err := svc.CreateIngredient(ctx, domain.CreateIngredientRequest{Name: "Garlic"})
	require.NoError(t, err)

	got, err := svc.GetIngredient(ctx, created.IngredientID)
	require.NoError(t, err)
	assert.Equal(t, "Garlic", got.Name)

	_, err = svc.CreateIngredient(ctx, domain.CreateIngredientRequest{Name: "Garlic"})
	assert.ErrorIs(t, err, domain.ErrIngredientNameTaken)

	_, err = svc.GetIngredient(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := svc.GetIngredients(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
