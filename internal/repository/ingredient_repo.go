package repository

import (
	"errors"

	"github.com/recipe-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrIngredientNotFound = errors.New("ingredient not found")
)

// IngredientRepository handles ingredient data access
type IngredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new IngredientRepository
func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

// GetByUserID retrieves all ingredients for a user, newest names first
func (r *IngredientRepository) GetByUserID(userID uint) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	result := r.db.Where("user_id = ?", userID).Order("name DESC").Find(&ingredients)
	if result.Error != nil {
		return nil, result.Error
	}
	return ingredients, nil
}

// GetByIDAndUserID retrieves an ingredient by ID scoped to its owner
func (r *IngredientRepository) GetByIDAndUserID(id, userID uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	result := r.db.Where("id = ? AND user_id = ?", id, userID).First(&ingredient)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, result.Error
	}
	return &ingredient, nil
}

// GetOrCreate resolves an ingredient by (user_id, name), creating it on
// first use. Conflict-tolerant, see TagRepository.GetOrCreate.
func (r *IngredientRepository) GetOrCreate(tx *gorm.DB, userID uint, name string) (*models.Ingredient, error) {
	if tx == nil {
		tx = r.db
	}

	ingredient := models.Ingredient{UserID: userID, Name: name}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
		DoNothing: true,
	}).Create(&ingredient).Error
	if err != nil {
		return nil, err
	}

	if ingredient.ID == 0 {
		if err := tx.Where("user_id = ? AND name = ?", userID, name).First(&ingredient).Error; err != nil {
			return nil, err
		}
	}

	return &ingredient, nil
}

// Update updates an ingredient
func (r *IngredientRepository) Update(ingredient *models.Ingredient) error {
	return r.db.Save(ingredient).Error
}

// Delete deletes an ingredient and its recipe associations
func (r *IngredientRepository) Delete(ingredient *models.Ingredient) error {
	return r.db.Select(clause.Associations).Delete(ingredient).Error
}
