package entities

import (
	"time"
)

const (
	DifficultyEasy   = "FACIL"
	DifficultyMedium = "MEDIO"
	DifficultyHard   = "DIFICIL"
)

type Recipe struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:255;not null;index" json:"title"`
	Description     *string   `json:"description"`
	PreparationTime int       `gorm:"not null" json:"preparation_time"`
	Servings        int       `gorm:"not null" json:"servings"`
	Difficulty      string    `gorm:"size:10;not null;check:difficulty IN ('FACIL','MEDIO','DIFICIL')" json:"difficulty"`
	ImageURL        *string   `json:"image_url"`
	AuthorID        uint      `gorm:"not null;index" json:"author_id"`
	CreatedAt       time.Time `json:"created_at"`

	Categories   []*Category         `gorm:"many2many:recipe_categories;constraint:OnDelete:CASCADE" json:"categories"`
	Ingredients  []*RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
	Instructions []*Instruction      `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"instructions"`
}

// RecipeCategory is the join model behind Recipe.Categories.
type RecipeCategory struct {
	RecipeID   uint `gorm:"primaryKey;autoIncrement:false"`
	CategoryID uint `gorm:"primaryKey;autoIncrement:false"`
}

// RecipeIngredient links a recipe to an ingredient and carries the quantity
// used, so it is an entity of its own rather than a plain join table.
type RecipeIngredient struct {
	RecipeID     uint    `gorm:"primaryKey;autoIncrement:false" json:"recipe_id"`
	IngredientID uint    `gorm:"primaryKey;autoIncrement:false" json:"ingredient_id"`
	Amount       float64 `gorm:"type:decimal(10,2);not null" json:"amount"`
	Unit         string  `gorm:"size:50;not null" json:"unit"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"ingredient"`
}

func IsValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
