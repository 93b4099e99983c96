package migration

import (
	"fmt"

	"gorm.io/gorm"

	"recipe-api/entities"
)

func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&entities.Recipe{}, "Categories", &entities.RecipeCategory{}); err != nil {
		return fmt.Errorf("setting up recipe categories join table: %w", err)
	}

	models := []struct {
		name  string
		model any
	}{
		{"user", &entities.User{}},
		{"category", &entities.Category{}},
		{"ingredient", &entities.Ingredient{}},
		{"recipe", &entities.Recipe{}},
		{"recipe category", &entities.RecipeCategory{}},
		{"recipe ingredient", &entities.RecipeIngredient{}},
		{"instruction", &entities.Instruction{}},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("migrating %s table: %w", m.name, err)
		}
	}
	return nil
}
