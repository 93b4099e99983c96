package category

import (
	"context"

	"gorm.io/gorm"

	"recipe-api/entities"
)

type (
	CategoryRepository interface {
		GetCategories(ctx context.Context) ([]*entities.Category, error)
		GetCategoryByID(ctx context.Context, id uint) (*entities.Category, error)
		GetCategoryByName(ctx context.Context, name string) (*entities.Category, error)
		CreateCategory(ctx context.Context, category *entities.Category) error
		GetTopCategories(ctx context.Context, limit int) ([]*CategoryCount, error)
	}

	// CategoryCount is a category with the number of distinct recipes using it.
	CategoryCount struct {
		entities.Category
		RecipeCount int64
	}

	categoryRepository struct {
		db *gorm.DB
	}
)

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) GetCategories(ctx context.Context) ([]*entities.Category, error) {
	var categories []*entities.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) GetCategoryByID(ctx context.Context, id uint) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetCategoryByName(ctx context.Context, name string) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category *entities.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// GetTopCategories ranks categories by distinct recipe count. Ties are broken
// by name so the order is stable. Categories without recipes are not ranked.
func (r *categoryRepository) GetTopCategories(ctx context.Context, limit int) ([]*CategoryCount, error) {
	var rows []*CategoryCount
	if err := r.db.WithContext(ctx).
		Model(&entities.Category{}).
		Select("categories.*, COUNT(DISTINCT recipe_categories.recipe_id) AS recipe_count").
		Joins("JOIN recipe_categories ON recipe_categories.category_id = categories.id").
		Group("categories.id").
		Order("recipe_count DESC, categories.name ASC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
