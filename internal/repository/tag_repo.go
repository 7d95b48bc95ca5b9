package repository

import (
	"errors"

	"github.com/recipe-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrTagNotFound = errors.New("tag not found")
)

// TagRepository handles tag data access
type TagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// GetByUserID retrieves all tags for a user, newest names first
func (r *TagRepository) GetByUserID(userID uint) ([]models.Tag, error) {
	var tags []models.Tag
	result := r.db.Where("user_id = ?", userID).Order("name DESC").Find(&tags)
	if result.Error != nil {
		return nil, result.Error
	}
	return tags, nil
}

// GetByIDAndUserID retrieves a tag by ID scoped to its owner
func (r *TagRepository) GetByIDAndUserID(id, userID uint) (*models.Tag, error) {
	var tag models.Tag
	result := r.db.Where("id = ? AND user_id = ?", id, userID).First(&tag)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, result.Error
	}
	return &tag, nil
}

// GetOrCreate resolves a tag by (user_id, name), creating it on first
// use. The insert tolerates a conflicting concurrent create and falls
// back to fetching the winning row, so two identical requests converge
// on one tag. Runs on the given handle so callers can pass a transaction.
func (r *TagRepository) GetOrCreate(tx *gorm.DB, userID uint, name string) (*models.Tag, error) {
	if tx == nil {
		tx = r.db
	}

	tag := models.Tag{UserID: userID, Name: name}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
		DoNothing: true,
	}).Create(&tag).Error
	if err != nil {
		return nil, err
	}

	// Conflict path: the insert was skipped, fetch the existing row
	if tag.ID == 0 {
		if err := tx.Where("user_id = ? AND name = ?", userID, name).First(&tag).Error; err != nil {
			return nil, err
		}
	}

	return &tag, nil
}

// Update updates a tag
func (r *TagRepository) Update(tag *models.Tag) error {
	return r.db.Save(tag).Error
}

// Delete deletes a tag and its recipe associations
func (r *TagRepository) Delete(tag *models.Tag) error {
	return r.db.Select(clause.Associations).Delete(tag).Error
}
