package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"recipe-api/entities"
)

// SeedUser inserts a user whose password column holds digest as is.
func SeedUser(t *testing.T, db *gorm.DB, email string, digest string) *entities.User {
	t.Helper()
	user := &entities.User{Email: email, Name: "User " + email, Password: digest, IsActive: true}
	require.NoError(t, db.Create(user).Error)
	return user
}

func SeedCategory(t *testing.T, db *gorm.DB, name string) *entities.Category {
	t.Helper()
	category := &entities.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

func SeedIngredient(t *testing.T, db *gorm.DB, name string) *entities.Ingredient {
	t.Helper()
	ingredient := &entities.Ingredient{Name: name}
	require.NoError(t, db.Create(ingredient).Error)
	return ingredient
}

// RecipeSeed describes a recipe row and its links.
type RecipeSeed struct {
	Title         string
	Description   *string
	AuthorID      uint
	CategoryIDs   []uint
	IngredientIDs []uint
	Steps         []string
}

// SeedRecipe writes the recipe and its children directly, bypassing the
// service layer.
func SeedRecipe(t *testing.T, db *gorm.DB, seed RecipeSeed) *entities.Recipe {
	t.Helper()
	recipe := &entities.Recipe{
		Title:           seed.Title,
		Description:     seed.Description,
		PreparationTime: 10,
		Servings:        2,
		Difficulty:      entities.DifficultyEasy,
		AuthorID:        seed.AuthorID,
	}
	require.NoError(t, db.Omit("Categories", "Ingredients", "Instructions").Create(recipe).Error)

	for _, id := range seed.CategoryIDs {
		require.NoError(t, db.Create(&entities.RecipeCategory{RecipeID: recipe.ID, CategoryID: id}).Error)
	}
	for _, id := range seed.IngredientIDs {
		require.NoError(t, db.Create(&entities.RecipeIngredient{
			RecipeID:     recipe.ID,
			IngredientID: id,
			Amount:       1,
			Unit:         "unit",
		}).Error)
	}
	for i, text := range seed.Steps {
		require.NoError(t, db.Create(&entities.Instruction{
			RecipeID:        recipe.ID,
			StepNumber:      i + 1,
			InstructionText: text,
		}).Error)
	}
	return recipe
}
