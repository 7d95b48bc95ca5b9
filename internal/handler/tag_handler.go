package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/recipe-api/internal/middleware"
	"github.com/recipe-api/internal/repository"
	"github.com/recipe-api/internal/service"
	"github.com/recipe-api/pkg/response"
)

// TagHandler handles tag API requests. There is no create endpoint:
// tags come into existence through recipe writes.
type TagHandler struct {
	tagService *service.TagService
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tagService *service.TagService) *TagHandler {
	return &TagHandler{
		tagService: tagService,
	}
}

// List handles listing the caller's tags
// GET /api/recipe/tags
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.tagService.List(middleware.GetUserID(c))
	if err != nil {
		response.InternalError(c, "failed to list tags")
		return
	}

	response.Success(c, tags)
}

// Update handles renaming a tag
// PUT/PATCH /api/recipe/tags/:id
func (h *TagHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)

	tagID, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid tag id")
		return
	}

	var req service.UpdateAttrRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tag, err := h.tagService.Update(userID, tagID, &req)
	if err != nil {
		if errors.Is(err, repository.ErrTagNotFound) {
			response.NotFound(c, "tag not found")
			return
		}
		response.InternalError(c, "failed to update tag")
		return
	}

	response.Success(c, tag)
}

// Delete handles deleting a tag
// DELETE /api/recipe/tags/:id
func (h *TagHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)

	tagID, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid tag id")
		return
	}

	if err := h.tagService.Delete(userID, tagID); err != nil {
		if errors.Is(err, repository.ErrTagNotFound) {
			response.NotFound(c, "tag not found")
			return
		}
		response.InternalError(c, "failed to delete tag")
		return
	}

	response.NoContent(c)
}

// RegisterRoutes registers tag routes
func (h *TagHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	tags := rg.Group("/recipe/tags")
	tags.Use(authMiddleware)
	{
		tags.GET("", h.List)
		tags.PUT("/:id", h.Update)
		tags.PATCH("/:id", h.Update)
		tags.DELETE("/:id", h.Delete)
	}
}
