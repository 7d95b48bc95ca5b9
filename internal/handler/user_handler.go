package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/recipe-api/internal/middleware"
	"github.com/recipe-api/internal/repository"
	"github.com/recipe-api/internal/service"
	"github.com/recipe-api/pkg/response"
)

// UserHandler handles account and token API requests
type UserHandler struct {
	authService *service.AuthService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(authService *service.AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
	}
}

// Create handles account registration
// POST /api/user/create
func (h *UserHandler) Create(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.ValidationError(c, map[string]string{"email": "email already registered"})
			return
		}
		if errors.Is(err, service.ErrEmailRequired) {
			response.ValidationError(c, map[string]string{"email": "user must have an email address"})
			return
		}
		response.InternalError(c, "failed to create user")
		return
	}

	response.Created(c, service.BuildUserResponse(user))
}

// Token exchanges email and password for a bearer token
// POST /api/user/token
func (h *UserHandler) Token(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, "unable to authenticate with provided credentials")
			return
		}
		response.InternalError(c, "failed to issue token")
		return
	}

	response.Success(c, token)
}

// RevokeToken revokes the caller's current token
// DELETE /api/user/token
func (h *UserHandler) RevokeToken(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.GetToken(c)); err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			response.Unauthorized(c, "invalid or revoked token")
			return
		}
		response.InternalError(c, "failed to revoke token")
		return
	}

	response.NoContent(c)
}

// Me retrieves the authenticated user's own account
// GET /api/user/me
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.authService.GetUserByID(middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		response.InternalError(c, "failed to load user")
		return
	}

	response.Success(c, service.BuildUserResponse(user))
}

// UpdateMe updates the authenticated user's own account
// PUT/PATCH /api/user/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.authService.UpdateUser(middleware.GetUserID(c), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.ValidationError(c, map[string]string{"email": "email already registered"})
			return
		}
		if errors.Is(err, service.ErrEmailRequired) {
			response.ValidationError(c, map[string]string{"email": "user must have an email address"})
			return
		}
		if errors.Is(err, repository.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		response.InternalError(c, "failed to update user")
		return
	}

	response.Success(c, service.BuildUserResponse(user))
}

// RegisterRoutes registers user routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	user := rg.Group("/user")
	{
		user.POST("/create", h.Create)
		user.POST("/token", h.Token)
		user.DELETE("/token", authMiddleware, h.RevokeToken)
		user.GET("/me", authMiddleware, h.Me)
		user.PUT("/me", authMiddleware, h.UpdateMe)
		user.PATCH("/me", authMiddleware, h.UpdateMe)
	}
}
