package models

import (
	"time"
)

// Recipe represents a user-owned recipe. Tags and ingredients are
// many-to-many and always belong to the same user as the recipe;
// the service layer resolves them within the owner's scope only.
type Recipe struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             uint      `gorm:"index;not null" json:"user_id"`
	Title              string    `gorm:"size:255;not null" json:"title"`
	Description        string    `gorm:"type:text" json:"description"`
	TimeMinutes        int       `gorm:"not null" json:"time_minutes"`
	Price              float64   `gorm:"type:decimal(5,2)" json:"price"`
	CaloriesPerServing int       `json:"calories_per_serving"`
	Link               string    `gorm:"size:255" json:"link"`
	Image              string    `gorm:"size:255" json:"image"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	// Relations
	User        User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Tags        []Tag        `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE" json:"tags,omitempty"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE" json:"ingredients,omitempty"`
}

// TableName specifies the table name for Recipe model
func (Recipe) TableName() string {
	return "recipes"
}
