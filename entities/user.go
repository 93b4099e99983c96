package entities

import "time"

type User struct {
	ID        uint       `gorm:"primaryKey" json:"user_id"`
	Email     string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	Password  string     `gorm:"size:255;not null" json:"-"`
	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login"`

	Recipes []*Recipe `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}
