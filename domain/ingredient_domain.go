package domain

import "fmt"

var (
	MessageSuccessGetIngredients    = "success get ingredients"
	MessageSuccessGetIngredient     = "success get ingredient"
	MessageSuccessCreateIngredient  = "ingredient created successfully"
	MessageSuccessGetTopIngredients = "success get top ingredients"
	MessageSuccessSearchIngredients = "success search ingredients"

	MessageFailedGetIngredients    = "failed to get ingredients"
	MessageFailedGetIngredient     = "failed to get ingredient"
	MessageFailedCreateIngredient  = "failed to create ingredient"
	MessageFailedGetTopIngredients = "failed to get top ingredients"
	MessageFailedSearchIngredients = "failed to search ingredients"

	ErrIngredientNotFound  = fmt.Errorf("ingredient %w", ErrNotFound)
	ErrIngredientNameTaken = fmt.Errorf("ingredient name %w", ErrConflict)
)

type (
	CreateIngredientRequest struct {
		Name     string  `json:"name" validate:"required,max=255"`
		ImageURL *string `json:"image_url" validate:"omitempty,max=2048"`
	}

	IngredientResponse struct {
		IngredientID uint    `json:"ingredient_id"`
		Name         string  `json:"name"`
		ImageURL     *string `json:"image_url"`
	}

	TopIngredientResponse struct {
		IngredientResponse
		RecipeCount int64 `json:"recipe_count"`
	}
)
