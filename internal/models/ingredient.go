package models

// Ingredient is a user-owned recipe component. Same shape and
// ownership semantics as Tag, kept as an independent entity.
type Ingredient struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"uniqueIndex:idx_ingredients_user_name;not null" json:"user_id"`
	Name   string `gorm:"uniqueIndex:idx_ingredients_user_name;size:255;not null" json:"name"`

	// Relations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Ingredient model
func (Ingredient) TableName() string {
	return "ingredients"
}
