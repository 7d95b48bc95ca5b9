package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/recipe-api/internal/middleware"
	"github.com/recipe-api/internal/repository"
	"github.com/recipe-api/internal/service"
	"github.com/recipe-api/internal/storage"
	"github.com/recipe-api/pkg/response"
)

// RecipeHandler handles recipe API requests
type RecipeHandler struct {
	recipeService *service.RecipeService
}

// NewRecipeHandler creates a new RecipeHandler
func NewRecipeHandler(recipeService *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
	}
}

// replaceRecipeRequest is the full-update payload. It differs from the
// partial update only in requiring the core fields to be present;
// fields a full update may omit still leave stored values untouched.
type replaceRecipeRequest struct {
	Title              string               `json:"title" binding:"required,max=255"`
	Description        *string              `json:"description"`
	TimeMinutes        int                  `json:"time_minutes" binding:"required,gt=0"`
	Price              *float64             `json:"price" binding:"required,gte=0,lte=999.99"`
	CaloriesPerServing *int                 `json:"calories_per_serving" binding:"omitempty,gte=0"`
	Link               *string              `json:"link" binding:"omitempty,max=255"`
	Tags               *[]service.AttrInput `json:"tags" binding:"omitempty,dive"`
	Ingredients        *[]service.AttrInput `json:"ingredients" binding:"omitempty,dive"`
}

// List handles listing the caller's recipes
// GET /api/recipe/recipes?tags=1,2&ingredients=3
func (h *RecipeHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)

	tagIDs, err := parseIDList(c.Query("tags"))
	if err != nil {
		response.ValidationError(c, map[string]string{"tags": err.Error()})
		return
	}
	ingredientIDs, err := parseIDList(c.Query("ingredients"))
	if err != nil {
		response.ValidationError(c, map[string]string{"ingredients": err.Error()})
		return
	}

	recipes, err := h.recipeService.List(userID, tagIDs, ingredientIDs)
	if err != nil {
		response.InternalError(c, "failed to list recipes")
		return
	}

	response.Success(c, recipes)
}

// Create handles recipe creation
// POST /api/recipe/recipes
func (h *RecipeHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req service.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	recipe, err := h.recipeService.Create(userID, &req)
	if err != nil {
		response.InternalError(c, "failed to create recipe")
		return
	}

	response.Created(c, recipe)
}

// Get handles retrieving a single recipe
// GET /api/recipe/recipes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)

	recipeID, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid recipe id")
		return
	}

	recipe, err := h.recipeService.Get(userID, recipeID)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			response.NotFound(c, "recipe not found")
			return
		}
		response.InternalError(c, "failed to load recipe")
		return
	}

	response.Success(c, recipe)
}

// Replace handles full recipe update
// PUT /api/recipe/recipes/:id
func (h *RecipeHandler) Replace(c *gin.Context) {
	userID := middleware.GetUserID(c)

	recipeID, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid recipe id")
		return
	}

	var req replaceRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	update := service.UpdateRecipeRequest{
		Title:              &req.Title,
		Description:        req.Description,
		TimeMinutes:        &req.TimeMinutes,
		Price:              req.Price,
		CaloriesPerServing: req.CaloriesPerServing,
		Link:               req.Link,
		Tags:               req.Tags,
		Ingredients:        req.Ingredients,
	}

	h.update(c, userID, recipeID, &update)
}

// Patch handles partial recipe update
// PATCH /api/recipe/recipes/:id
func (h *RecipeHandler) Patch(c *gin.Context) {
	userID := middleware.GetUserID(c)

	recipeID, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid recipe id")
		return
	}

	var req service.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	h.update(c, userID, recipeID, &req)
}

func (h *RecipeHandler) update(c *gin.Context, userID, recipeID uint, req *service.UpdateRecipeRequest) {
	recipe, err := h.recipeService.Update(userID, recipeID, req)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			response.NotFound(c, "recipe not found")
			return
		}
		response.InternalError(c, "failed to update recipe")
		return
	}

	response.Success(c, recipe)
}

// Delete handles recipe deletion
// DELETE /api/recipe/recipes/:id
func (h *RecipeHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)

	recipeID, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid recipe id")
		return
	}

	if err := h.recipeService.Delete(userID, recipeID); err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			response.NotFound(c, "recipe not found")
			return
		}
		response.InternalError(c, "failed to delete recipe")
		return
	}

	response.NoContent(c)
}

// UploadImage attaches an image to a recipe
// POST /api/recipe/recipes/:id/upload-image
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	userID := middleware.GetUserID(c)

	recipeID, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid recipe id")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.ValidationError(c, map[string]string{"image": "no image file submitted"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, "failed to read uploaded file")
		return
	}
	defer file.Close()

	result, err := h.recipeService.AttachImage(userID, recipeID, file, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			response.NotFound(c, "recipe not found")
			return
		}
		if errors.Is(err, storage.ErrNotAnImage) {
			response.ValidationError(c, map[string]string{"image": "upload a valid image"})
			return
		}
		response.InternalError(c, "failed to store image")
		return
	}

	response.Success(c, result)
}

// RegisterRoutes registers recipe routes
func (h *RecipeHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	recipes := rg.Group("/recipe/recipes")
	recipes.Use(authMiddleware)
	{
		recipes.GET("", h.List)
		recipes.POST("", middleware.WriteLoggerMiddleware(), h.Create)
		recipes.GET("/:id", h.Get)
		recipes.PUT("/:id", middleware.WriteLoggerMiddleware(), h.Replace)
		recipes.PATCH("/:id", middleware.WriteLoggerMiddleware(), h.Patch)
		recipes.DELETE("/:id", middleware.WriteLoggerMiddleware(), h.Delete)
		recipes.POST("/:id/upload-image", middleware.WriteLoggerMiddleware(), h.UploadImage)
	}
}

// parseID parses the :id path parameter
func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// parseIDList splits a comma-separated query parameter into IDs.
// A malformed token is the caller's error, reported as such rather
// than propagated as a server failure.
func parseIDList(s string) ([]uint, error) {
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q, expected comma separated integers", part)
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
