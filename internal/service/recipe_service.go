package service

import (
	"fmt"
	"io"
	"log"

	"github.com/recipe-api/internal/models"
	"github.com/recipe-api/internal/repository"
	"github.com/recipe-api/internal/storage"
	"gorm.io/gorm"
)

// RecipeService handles recipe operations, including resolving
// tag/ingredient name descriptors to owned rows and filtered listing
type RecipeService struct {
	recipeRepo     *repository.RecipeRepository
	tagRepo        *repository.TagRepository
	ingredientRepo *repository.IngredientRepository
	imageStore     *storage.ImageStore
}

// NewRecipeService creates a new RecipeService
func NewRecipeService(
	recipeRepo *repository.RecipeRepository,
	tagRepo *repository.TagRepository,
	ingredientRepo *repository.IngredientRepository,
	imageStore *storage.ImageStore,
) *RecipeService {
	return &RecipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		imageStore:     imageStore,
	}
}

// AttrInput is a tag/ingredient descriptor carried on recipe writes
type AttrInput struct {
	Name string `json:"name" binding:"required,max=255"`
}

// AttrResponse is the tag/ingredient representation
type AttrResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CreateRecipeRequest represents the create recipe request
type CreateRecipeRequest struct {
	Title              string      `json:"title" binding:"required,max=255"`
	Description        string      `json:"description"`
	TimeMinutes        int         `json:"time_minutes" binding:"required,gt=0"`
	Price              float64     `json:"price" binding:"gte=0,lte=999.99"`
	CaloriesPerServing int         `json:"calories_per_serving" binding:"omitempty,gte=0"`
	Link               string      `json:"link" binding:"omitempty,max=255"`
	Tags               []AttrInput `json:"tags" binding:"omitempty,dive"`
	Ingredients        []AttrInput `json:"ingredients" binding:"omitempty,dive"`
}

// UpdateRecipeRequest represents a recipe update. Nil fields are
// absent from the payload and leave the stored value untouched; a
// present tags/ingredients field (even an empty list) replaces the
// whole association set. The owning user is not represented here at
// all: this struct is the allow-list of mutable fields.
type UpdateRecipeRequest struct {
	Title              *string      `json:"title" binding:"omitempty,max=255"`
	Description        *string      `json:"description"`
	TimeMinutes        *int         `json:"time_minutes" binding:"omitempty,gt=0"`
	Price              *float64     `json:"price" binding:"omitempty,gte=0,lte=999.99"`
	CaloriesPerServing *int         `json:"calories_per_serving" binding:"omitempty,gte=0"`
	Link               *string      `json:"link" binding:"omitempty,max=255"`
	Tags               *[]AttrInput `json:"tags" binding:"omitempty,dive"`
	Ingredients        *[]AttrInput `json:"ingredients" binding:"omitempty,dive"`
}

// RecipeResponse is the list representation of a recipe
type RecipeResponse struct {
	ID                 uint    `json:"id"`
	Title              string  `json:"title"`
	TimeMinutes        int     `json:"time_minutes"`
	Price              float64 `json:"price"`
	CaloriesPerServing int     `json:"calories_per_serving"`
	Link               string  `json:"link"`
}

// RecipeDetailResponse adds the fields only the detail view carries
type RecipeDetailResponse struct {
	RecipeResponse
	Description string         `json:"description"`
	Tags        []AttrResponse `json:"tags"`
	Ingredients []AttrResponse `json:"ingredients"`
	Image       string         `json:"image"`
}

// RecipeImageResponse is returned by the upload-image operation
type RecipeImageResponse struct {
	ID    uint   `json:"id"`
	Image string `json:"image"`
}

// List retrieves the user's recipes, optionally filtered to those
// having any of the given tag IDs and any of the given ingredient IDs
func (s *RecipeService) List(userID uint, tagIDs, ingredientIDs []uint) ([]RecipeResponse, error) {
	recipes, err := s.recipeRepo.GetByUserID(userID, tagIDs, ingredientIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]RecipeResponse, len(recipes))
	for i := range recipes {
		responses[i] = buildRecipeResponse(&recipes[i])
	}
	return responses, nil
}

// Get retrieves one of the user's recipes with its associations
func (s *RecipeService) Get(userID, recipeID uint) (*RecipeDetailResponse, error) {
	recipe, err := s.recipeRepo.GetByIDAndUserID(recipeID, userID)
	if err != nil {
		return nil, err
	}
	return buildRecipeDetailResponse(recipe), nil
}

// Create creates a recipe for the user, resolving any tag/ingredient
// descriptors within the user's own vocabulary
func (s *RecipeService) Create(userID uint, req *CreateRecipeRequest) (*RecipeDetailResponse, error) {
	recipe := &models.Recipe{
		UserID:             userID,
		Title:              req.Title,
		Description:        req.Description,
		TimeMinutes:        req.TimeMinutes,
		Price:              req.Price,
		CaloriesPerServing: req.CaloriesPerServing,
		Link:               req.Link,
	}

	err := s.recipeRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.recipeRepo.Create(tx, recipe); err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}

		tags, err := s.reconcileTags(tx, userID, req.Tags)
		if err != nil {
			return err
		}
		if err := s.recipeRepo.ReplaceTags(tx, recipe, tags); err != nil {
			return err
		}

		ingredients, err := s.reconcileIngredients(tx, userID, req.Ingredients)
		if err != nil {
			return err
		}
		return s.recipeRepo.ReplaceIngredients(tx, recipe, ingredients)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(userID, recipe.ID)
}

// Update updates one of the user's recipes. The whole write runs in a
// single transaction so a concurrent reader never observes a recipe
// with its association set partially cleared.
func (s *RecipeService) Update(userID, recipeID uint, req *UpdateRecipeRequest) (*RecipeDetailResponse, error) {
	recipe, err := s.recipeRepo.GetByIDAndUserID(recipeID, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.TimeMinutes != nil {
		recipe.TimeMinutes = *req.TimeMinutes
	}
	if req.Price != nil {
		recipe.Price = *req.Price
	}
	if req.CaloriesPerServing != nil {
		recipe.CaloriesPerServing = *req.CaloriesPerServing
	}
	if req.Link != nil {
		recipe.Link = *req.Link
	}

	err = s.recipeRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.recipeRepo.Update(tx, recipe); err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}

		if req.Tags != nil {
			tags, err := s.reconcileTags(tx, userID, *req.Tags)
			if err != nil {
				return err
			}
			if err := s.recipeRepo.ReplaceTags(tx, recipe, tags); err != nil {
				return err
			}
		}

		if req.Ingredients != nil {
			ingredients, err := s.reconcileIngredients(tx, userID, *req.Ingredients)
			if err != nil {
				return err
			}
			if err := s.recipeRepo.ReplaceIngredients(tx, recipe, ingredients); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(userID, recipe.ID)
}

// Delete deletes one of the user's recipes. The stored image file is
// removed best effort after the row is gone.
func (s *RecipeService) Delete(userID, recipeID uint) error {
	recipe, err := s.recipeRepo.GetByIDAndUserID(recipeID, userID)
	if err != nil {
		return err
	}

	if err := s.recipeRepo.Delete(recipe); err != nil {
		return err
	}

	if recipe.Image != "" {
		if err := s.imageStore.Remove(recipe.Image); err != nil {
			log.Printf("failed to remove image %s for deleted recipe %d: %v", recipe.Image, recipe.ID, err)
		}
	}

	return nil
}

// AttachImage validates and stores an uploaded image for one of the
// user's recipes, replacing any previous image
func (s *RecipeService) AttachImage(userID, recipeID uint, file io.ReadSeeker, originalName string) (*RecipeImageResponse, error) {
	recipe, err := s.recipeRepo.GetByIDAndUserID(recipeID, userID)
	if err != nil {
		return nil, err
	}

	imagePath, err := s.imageStore.SaveRecipeImage(file, originalName)
	if err != nil {
		return nil, err
	}

	if err := s.recipeRepo.UpdateImage(recipe.ID, imagePath); err != nil {
		return nil, err
	}

	if recipe.Image != "" {
		if err := s.imageStore.Remove(recipe.Image); err != nil {
			log.Printf("failed to remove replaced image %s for recipe %d: %v", recipe.Image, recipe.ID, err)
		}
	}

	return &RecipeImageResponse{ID: recipe.ID, Image: imagePath}, nil
}

// reconcileTags resolves name descriptors to the user's own tag rows,
// creating rows on first use. Repeated names collapse to one row, and
// running the same descriptor list again yields the same set.
func (s *RecipeService) reconcileTags(tx *gorm.DB, userID uint, inputs []AttrInput) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		if _, ok := seen[in.Name]; ok {
			continue
		}
		seen[in.Name] = struct{}{}

		tag, err := s.tagRepo.GetOrCreate(tx, userID, in.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tag %q: %w", in.Name, err)
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

// reconcileIngredients mirrors reconcileTags for ingredients
func (s *RecipeService) reconcileIngredients(tx *gorm.DB, userID uint, inputs []AttrInput) ([]models.Ingredient, error) {
	ingredients := make([]models.Ingredient, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		if _, ok := seen[in.Name]; ok {
			continue
		}
		seen[in.Name] = struct{}{}

		ingredient, err := s.ingredientRepo.GetOrCreate(tx, userID, in.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve ingredient %q: %w", in.Name, err)
		}
		ingredients = append(ingredients, *ingredient)
	}
	return ingredients, nil
}

func buildRecipeResponse(recipe *models.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:                 recipe.ID,
		Title:              recipe.Title,
		TimeMinutes:        recipe.TimeMinutes,
		Price:              recipe.Price,
		CaloriesPerServing: recipe.CaloriesPerServing,
		Link:               recipe.Link,
	}
}

func buildRecipeDetailResponse(recipe *models.Recipe) *RecipeDetailResponse {
	tags := make([]AttrResponse, len(recipe.Tags))
	for i, t := range recipe.Tags {
		tags[i] = AttrResponse{ID: t.ID, Name: t.Name}
	}
	ingredients := make([]AttrResponse, len(recipe.Ingredients))
	for i, in := range recipe.Ingredients {
		ingredients[i] = AttrResponse{ID: in.ID, Name: in.Name}
	}

	return &RecipeDetailResponse{
		RecipeResponse: buildRecipeResponse(recipe),
		Description:    recipe.Description,
		Tags:           tags,
		Ingredients:    ingredients,
		Image:          recipe.Image,
	}
}
