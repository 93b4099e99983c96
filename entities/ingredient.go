package entities

type Ingredient struct {
	ID       uint    `gorm:"primaryKey" json:"ingredient_id"`
	Name     string  `gorm:"size:255;not null;uniqueIndex" json:"name"`
	ImageURL *string `json:"image_url"`
}
