package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	MessageSuccessGetRecipes          = "success get recipes"
	MessageSuccessGetRecipeDetail     = "success get recipe detail"
	MessageSuccessCreateRecipe        = "recipe created successfully"
	MessageSuccessDeleteRecipe        = "recipe deleted successfully"
	MessageSuccessUploadRecipeImage   = "recipe image uploaded successfully"
	MessageSuccessGetRecipeIngredient = "success get recipe ingredients"
	MessageSuccessGetRecipeSteps      = "success get recipe instructions"

	MessageFailedGetRecipes          = "failed to get recipes"
	MessageFailedGetRecipeDetail     = "failed to get recipe detail"
	MessageFailedCreateRecipe        = "failed to create recipe"
	MessageFailedDeleteRecipe        = "failed to delete recipe"
	MessageFailedUploadRecipeImage   = "failed to upload recipe image"
	MessageFailedGetRecipeIngredient = "failed to get recipe ingredients"
	MessageFailedGetRecipeSteps      = "failed to get recipe instructions"

	ErrRecipeNotFound           = fmt.Errorf("recipe %w", ErrNotFound)
	ErrUnauthorizedRecipeAccess = fmt.Errorf("only the author can modify a recipe: %w", ErrForbidden)
	ErrInvalidImageFormat       = fmt.Errorf("%w: image must be jpg, jpeg, png or webp", ErrValidation)
	ErrImageStorageUnavailable  = errors.New("image storage is not configured")
)

type (
	RecipeIngredientRequest struct {
		IngredientID uint    `json:"ingredient_id" validate:"required"`
		Amount       float64 `json:"amount" validate:"gt=0"`
		Unit         string  `json:"unit" validate:"required,max=50"`
	}

	CreateRecipeRequest struct {
		Title           string                    `json:"title" validate:"required,max=255"`
		Description     *string                   `json:"description"`
		PreparationTime int                       `json:"preparation_time" validate:"min=0"`
		Servings        int                       `json:"servings" validate:"min=1"`
		Difficulty      string                    `json:"difficulty" validate:"required,oneof=FACIL MEDIO DIFICIL"`
		ImageURL        *string                   `json:"image_url" validate:"omitempty,max=2048"`
		CategoryIDs     []uint                    `json:"category_ids" validate:"dive,required"`
		Ingredients     []RecipeIngredientRequest `json:"ingredients" validate:"dive"`
		Instructions    []string                  `json:"instructions" validate:"dive,required"`
	}

	AuthorQuery struct {
		AuthorID uint `query:"author_id"`
	}

	RecipeIngredientResponse struct {
		RecipeID     uint               `json:"recipe_id"`
		IngredientID uint               `json:"ingredient_id"`
		Amount       float64            `json:"amount"`
		Unit         string             `json:"unit"`
		Ingredient   IngredientResponse `json:"ingredient"`
	}

	Recipe struct {
		ID              uint                       `json:"id"`
		Title           string                     `json:"title"`
		Description     *string                    `json:"description"`
		PreparationTime int                        `json:"preparation_time"`
		Servings        int                        `json:"servings"`
		Difficulty      string                     `json:"difficulty"`
		ImageURL        *string                    `json:"image_url"`
		AuthorID        uint                       `json:"author_id"`
		CreatedAt       time.Time                  `json:"created_at"`
		Categories      []CategoryResponse         `json:"categories"`
		Ingredients     []RecipeIngredientResponse `json:"ingredients"`
	}

	RecipeDetail struct {
		Recipe
		Instructions []InstructionResponse `json:"instructions"`
	}
)
