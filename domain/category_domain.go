package domain

import "fmt"

var (
	MessageSuccessGetCategories    = "success get categories"
	MessageSuccessGetCategory      = "success get category"
	MessageSuccessCreateCategory   = "category created successfully"
	MessageSuccessGetTopCategories = "success get top categories"

	MessageFailedGetCategories    = "failed to get categories"
	MessageFailedGetCategory      = "failed to get category"
	MessageFailedCreateCategory   = "failed to create category"
	MessageFailedGetTopCategories = "failed to get top categories"

	ErrCategoryNotFound  = fmt.Errorf("category %w", ErrNotFound)
	ErrCategoryNameTaken = fmt.Errorf("category name %w", ErrConflict)
)

type (
	CreateCategoryRequest struct {
		Name        string  `json:"name" validate:"required,max=100"`
		Description *string `json:"description"`
		ImageURL    *string `json:"image_url" validate:"omitempty,max=2048"`
	}

	CategoryResponse struct {
		CategoryID  uint    `json:"category_id"`
		Name        string  `json:"name"`
		Description *string `json:"description"`
		ImageURL    *string `json:"image_url"`
	}

	TopCategoryResponse struct {
		CategoryResponse
		RecipeCount int64 `json:"recipe_count"`
	}
)
