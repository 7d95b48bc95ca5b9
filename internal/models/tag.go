package models

// Tag is a user-owned label for filtering recipes. The composite
// unique index makes (user_id, name) a real natural key so that
// concurrent get-or-create resolves to a single row.
type Tag struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"uniqueIndex:idx_tags_user_name;not null" json:"user_id"`
	Name   string `gorm:"uniqueIndex:idx_tags_user_name;size:255;not null" json:"name"`

	// Relations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Tag model
func (Tag) TableName() string {
	return "tags"
}
