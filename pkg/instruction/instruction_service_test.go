package instruction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-api/domain"
	"recipe-api/internal/testutil"
)

func TestGetInstructions(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewInstructionService(NewInstructionRepository(db))
	ctx := context.Background()

	list, err := svc.GetInstructions(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	author := testutil.SeedUser(t, db, "chef@example.com", "digest")
	first := testutil.SeedRecipe(t, db, testutil.RecipeSeed{Title: "Tea", AuthorID: author.ID, Steps: []string{"boil", "steep"}})
	second := testutil.SeedRecipe(t, db, testutil.RecipeSeed{Title: "Toast", AuthorID: author.ID, Steps: []string{"slice"}})

	list, err = svc.GetInstructions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, first.ID, list[0].RecipeID)
	assert.Equal(t, 1, list[0].StepNumber)
	assert.Equal(t, "steep", list[1].InstructionText)
	assert.Equal(t, second.ID, list[2].RecipeID)

	got, err := svc.GetInstruction(ctx, list[1].InstructionID)
	require.NoError(t, err)
	assert.Equal(t, list[1], got)

	_, err = svc.GetInstruction(ctx, 4242)
	assert.ErrorIs(t, err, domain.ErrInstructionNotFound)
}
