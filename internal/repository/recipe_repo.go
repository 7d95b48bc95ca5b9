package repository

import (
	"errors"

	"github.com/recipe-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
)

// RecipeRepository handles recipe data access
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new RecipeRepository
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// Transaction runs fn inside a database transaction. The recipe write
// path uses this so the clear-then-repopulate of association sets is
// never observable half done.
func (r *RecipeRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// GetByIDAndUserID retrieves a recipe by ID scoped to its owner,
// with tags and ingredients loaded
func (r *RecipeRepository) GetByIDAndUserID(id, userID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	result := r.db.Preload("Tags").Preload("Ingredients").
		Where("id = ? AND user_id = ?", id, userID).First(&recipe)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, result.Error
	}
	return &recipe, nil
}

// GetByUserID retrieves a user's recipes, optionally narrowed to those
// associated with any of the given tag IDs and any of the given
// ingredient IDs. The joins can fan out to one row per association, so
// the select is distinct. Newest recipes first.
func (r *RecipeRepository) GetByUserID(userID uint, tagIDs, ingredientIDs []uint) ([]models.Recipe, error) {
	query := r.db.Model(&models.Recipe{}).Where("recipes.user_id = ?", userID)

	if len(tagIDs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", tagIDs)
	}
	if len(ingredientIDs) > 0 {
		query = query.
			Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", ingredientIDs)
	}

	var recipes []models.Recipe
	result := query.Distinct("recipes.*").Order("recipes.id DESC").Find(&recipes)
	if result.Error != nil {
		return nil, result.Error
	}
	return recipes, nil
}

// Update updates a recipe's own columns (associations are managed
// separately by the caller)
func (r *RecipeRepository) Update(tx *gorm.DB, recipe *models.Recipe) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Omit("Tags", "Ingredients").Save(recipe).Error
}

// UpdateImage updates only the stored image reference
func (r *RecipeRepository) UpdateImage(id uint, image string) error {
	return r.db.Model(&models.Recipe{}).Where("id = ?", id).Update("image", image).Error
}

// Delete deletes a recipe and its association rows
func (r *RecipeRepository) Delete(recipe *models.Recipe) error {
	return r.db.Select(clause.Associations).Delete(recipe).Error
}

// ReplaceTags replaces the recipe's tag association set
func (r *RecipeRepository) ReplaceTags(tx *gorm.DB, recipe *models.Recipe, tags []models.Tag) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Model(recipe).Association("Tags").Replace(&tags)
}

// ReplaceIngredients replaces the recipe's ingredient association set
func (r *RecipeRepository) ReplaceIngredients(tx *gorm.DB, recipe *models.Recipe, ingredients []models.Ingredient) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Model(recipe).Association("Ingredients").Replace(&ingredients)
}

// Create inserts a recipe row without touching associations
func (r *RecipeRepository) Create(tx *gorm.DB, recipe *models.Recipe) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Omit("Tags", "Ingredients").Create(recipe).Error
}
