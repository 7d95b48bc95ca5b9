package service

import (
	"github.com/recipe-api/internal/repository"
)

// IngredientService handles ingredient operations, same surface as
// TagService
type IngredientService struct {
	ingredientRepo *repository.IngredientRepository
}

// NewIngredientService creates a new IngredientService
func NewIngredientService(ingredientRepo *repository.IngredientRepository) *IngredientService {
	return &IngredientService{ingredientRepo: ingredientRepo}
}

// List retrieves the user's ingredients ordered by name descending
func (s *IngredientService) List(userID uint) ([]AttrResponse, error) {
	ingredients, err := s.ingredientRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	responses := make([]AttrResponse, len(ingredients))
	for i, in := range ingredients {
		responses[i] = AttrResponse{ID: in.ID, Name: in.Name}
	}
	return responses, nil
}

// Update renames one of the user's ingredients
func (s *IngredientService) Update(userID, ingredientID uint, req *UpdateAttrRequest) (*AttrResponse, error) {
	ingredient, err := s.ingredientRepo.GetByIDAndUserID(ingredientID, userID)
	if err != nil {
		return nil, err
	}

	ingredient.Name = req.Name
	if err := s.ingredientRepo.Update(ingredient); err != nil {
		return nil, err
	}

	return &AttrResponse{ID: ingredient.ID, Name: ingredient.Name}, nil
}

// Delete deletes one of the user's ingredients
func (s *IngredientService) Delete(userID, ingredientID uint) error {
	ingredient, err := s.ingredientRepo.GetByIDAndUserID(ingredientID, userID)
	if err != nil {
		return err
	}
	return s.ingredientRepo.Delete(ingredient)
}
