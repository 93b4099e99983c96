package entities

type Category struct {
	ID          uint    `gorm:"primaryKey" json:"category_id"`
	Name        string  `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
}
