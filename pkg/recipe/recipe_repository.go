package recipe

import (
	"context"
	"slices"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recipe-api/domain"
	"recipe-api/entities"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, categoryIDs []uint, ingredients []*entities.RecipeIngredient, steps []string) error
		GetRecipes(ctx context.Context) ([]*entities.Recipe, error)
		GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error)
		GetRecipesByCategory(ctx context.Context, categoryID uint) ([]*entities.Recipe, error)
		GetRecipesByIngredient(ctx context.Context, ingredientID uint) ([]*entities.Recipe, error)
		GetRecipesByAuthor(ctx context.Context, authorID uint) ([]*entities.Recipe, error)
		SearchRecipes(ctx context.Context, query string) ([]*entities.Recipe, error)
		RecipeExists(ctx context.Context, id uint) (bool, error)
		GetRecipeIngredients(ctx context.Context, recipeID uint) ([]*entities.RecipeIngredient, error)
		GetRecipeInstructions(ctx context.Context, recipeID uint) ([]*entities.Instruction, error)
		UpdateImageURL(ctx context.Context, id uint, imageURL string) error
		DeleteRecipe(ctx context.Context, id uint) error
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func preloadChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("categories.name ASC")
		}).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_ingredients.ingredient_id ASC")
		}).
		Preload("Ingredients.Ingredient")
}

// CreateRecipe writes the recipe and all of its children in one transaction.
// Instructions are numbered 1..len(steps) in the order given.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, categoryIDs []uint, ingredients []*entities.RecipeIngredient, steps []string) error {
	ingredientIDs := make([]uint, 0, len(ingredients))
	for _, ri := range ingredients {
		ingredientIDs = append(ingredientIDs, ri.IngredientID)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireExisting(tx, "categories", "category", categoryIDs); err != nil {
			return err
		}
		if err := requireExisting(tx, "ingredients", "ingredient", ingredientIDs); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}

		if len(categoryIDs) > 0 {
			links := make([]*entities.RecipeCategory, 0, len(categoryIDs))
			for _, id := range categoryIDs {
				links = append(links, &entities.RecipeCategory{RecipeID: recipe.ID, CategoryID: id})
			}
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}

		if len(ingredients) > 0 {
			for _, ri := range ingredients {
				ri.RecipeID = recipe.ID
			}
			if err := tx.Omit(clause.Associations).Create(&ingredients).Error; err != nil {
				return err
			}
		}

		if len(steps) > 0 {
			instructions := make([]*entities.Instruction, 0, len(steps))
			for i, text := range steps {
				instructions = append(instructions, &entities.Instruction{
					RecipeID:        recipe.ID,
					StepNumber:      i + 1,
					InstructionText: text,
				})
			}
			if err := tx.Create(&instructions).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// requireExisting fails with a validation error naming the first id that has
// no row in table.
func requireExisting(tx *gorm.DB, table string, label string, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	var found []uint
	if err := tx.Table(table).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return err
	}
	for _, id := range ids {
		if !slices.Contains(found, id) {
			return domain.ValidationError("%s %d does not exist", label, id)
		}
	}
	return nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := preloadChildren(r.db.WithContext(ctx)).
		Order("id ASC").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := preloadChildren(r.db.WithContext(ctx)).
		Preload("Instructions", func(db *gorm.DB) *gorm.DB {
			return db.Order("instructions.step_number ASC")
		}).
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipesByCategory(ctx context.Context, categoryID uint) ([]*entities.Recipe, error) {
	sub := r.db.WithContext(ctx).
		Table("recipe_categories").
		Select("recipe_id").
		Where("category_id = ?", categoryID)
	return r.findIn(ctx, sub)
}

func (r *recipeRepository) GetRecipesByIngredient(ctx context.Context, ingredientID uint) ([]*entities.Recipe, error) {
	sub := r.db.WithContext(ctx).
		Table("recipe_ingredients").
		Select("recipe_id").
		Where("ingredient_id = ?", ingredientID)
	return r.findIn(ctx, sub)
}

func (r *recipeRepository) GetRecipesByAuthor(ctx context.Context, authorID uint) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := preloadChildren(r.db.WithContext(ctx)).
		Where("author_id = ?", authorID).
		Order("title ASC, id ASC").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// SearchRecipes matches the query as a case-insensitive substring of the
// title, the description, any ingredient name or any category name. Each
// recipe appears once, ordered by title.
func (r *recipeRepository) SearchRecipes(ctx context.Context, query string) ([]*entities.Recipe, error) {
	pattern := domain.ContainsPattern(query)
	sub := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Select("DISTINCT recipes.id").
		Joins("LEFT JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
		Joins("LEFT JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("LEFT JOIN recipe_categories ON recipe_categories.recipe_id = recipes.id").
		Joins("LEFT JOIN categories ON categories.id = recipe_categories.category_id").
		Where(
			`LOWER(recipes.title) LIKE ? ESCAPE '\' OR LOWER(recipes.description) LIKE ? ESCAPE '\' OR LOWER(ingredients.name) LIKE ? ESCAPE '\' OR LOWER(categories.name) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern, pattern,
		)
	return r.findIn(ctx, sub)
}

func (r *recipeRepository) findIn(ctx context.Context, sub *gorm.DB) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := preloadChildren(r.db.WithContext(ctx)).
		Where("id IN (?)", sub).
		Order("title ASC, id ASC").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) RecipeExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) GetRecipeIngredients(ctx context.Context, recipeID uint) ([]*entities.RecipeIngredient, error) {
	var links []*entities.RecipeIngredient
	if err := r.db.WithContext(ctx).
		Preload("Ingredient").
		Where("recipe_id = ?", recipeID).
		Order("ingredient_id ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (r *recipeRepository) GetRecipeInstructions(ctx context.Context, recipeID uint) ([]*entities.Instruction, error) {
	var instructions []*entities.Instruction
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("step_number ASC").
		Find(&instructions).Error; err != nil {
		return nil, err
	}
	return instructions, nil
}

func (r *recipeRepository) UpdateImageURL(ctx context.Context, id uint, imageURL string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("id = ?", id).
		Update("image_url", imageURL).Error
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return DeleteRecipes(tx, []uint{id})
	})
}

// DeleteRecipes removes recipes children first: instructions, ingredient
// links, category links, then the recipe rows. Run it inside a transaction.
func DeleteRecipes(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	children := []any{
		&entities.Instruction{},
		&entities.RecipeIngredient{},
		&entities.RecipeCategory{},
	}
	for _, model := range children {
		if err := tx.Where("recipe_id IN ?", ids).Delete(model).Error; err != nil {
			return err
		}
	}
	return tx.Where("id IN ?", ids).Delete(&entities.Recipe{}).Error
}
