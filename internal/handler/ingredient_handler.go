package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/recipe-api/internal/middleware"
	"github.com/recipe-api/internal/repository"
	"github.com/recipe-api/internal/service"
	"github.com/recipe-api/pkg/response"
)

// IngredientHandler handles ingredient API requests, same surface as
// TagHandler
type IngredientHandler struct {
	ingredientService *service.IngredientService
}

// NewIngredientHandler creates a new IngredientHandler
func NewIngredientHandler(ingredientService *service.IngredientService) *IngredientHandler {
	return &IngredientHandler{
		ingredientService: ingredientService,
	}
}

// List handles listing the caller's ingredients
// GET /api/recipe/ingredients
func (h *IngredientHandler) List(c *gin.Context) {
	ingredients, err := h.ingredientService.List(middleware.GetUserID(c))
	if err != nil {
		response.InternalError(c, "failed to list ingredients")
		return
	}

	response.Success(c, ingredients)
}

// Update handles renaming an ingredient
// PUT/PATCH /api/recipe/ingredients/:id
func (h *IngredientHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)

	ingredientID, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid ingredient id")
		return
	}

	var req service.UpdateAttrRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ingredient, err := h.ingredientService.Update(userID, ingredientID, &req)
	if err != nil {
		if errors.Is(err, repository.ErrIngredientNotFound) {
			response.NotFound(c, "ingredient not found")
			return
		}
		response.InternalError(c, "failed to update ingredient")
		return
	}

	response.Success(c, ingredient)
}

// Delete handles deleting an ingredient
// DELETE /api/recipe/ingredients/:id
func (h *IngredientHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)

	ingredientID, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid ingredient id")
		return
	}

	if err := h.ingredientService.Delete(userID, ingredientID); err != nil {
		if errors.Is(err, repository.ErrIngredientNotFound) {
			response.NotFound(c, "ingredient not found")
			return
		}
		response.InternalError(c, "failed to delete ingredient")
		return
	}

	response.NoContent(c)
}

// RegisterRoutes registers ingredient routes
func (h *IngredientHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	ingredients := rg.Group("/recipe/ingredients")
	ingredients.Use(authMiddleware)
	{
		ingredients.GET("", h.List)
		ingredients.PUT("/:id", h.Update)
		ingredients.PATCH("/:id", h.Update)
		ingredients.DELETE("/:id", h.Delete)
	}
}
