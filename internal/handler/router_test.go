package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/recipe-api/internal/config"
	"github.com/recipe-api/internal/handler"
	"github.com/recipe-api/internal/middleware"
	"github.com/recipe-api/internal/models"
	"github.com/recipe-api/internal/repository"
	"github.com/recipe-api/internal/service"
	"github.com/recipe-api/internal/storage"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	auth     *service.AuthService
	mediaDir string
}

// setupTestEnv wires the full API stack against an in-memory database
// and redis, mirroring cmd/server
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
	))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	mediaDir := t.TempDir()

	userRepo := repository.NewUserRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	tagRepo := repository.NewTagRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	blacklist := repository.NewTokenBlacklist(rdb)
	imageStore := storage.NewImageStore(mediaDir)

	authService := service.NewAuthService(userRepo, blacklist, config.JWTConfig{
		Secret:      "test-secret",
		ExpireHours: 1,
	})
	recipeService := service.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, imageStore)
	tagService := service.NewTagService(tagRepo)
	ingredientService := service.NewIngredientService(ingredientRepo)

	router := gin.New()
	api := router.Group("/api")
	authMiddleware := middleware.AuthMiddleware(authService)
	handler.NewUserHandler(authService).RegisterRoutes(api, authMiddleware)
	handler.NewRecipeHandler(recipeService).RegisterRoutes(api, authMiddleware)
	handler.NewTagHandler(tagService).RegisterRoutes(api, authMiddleware)
	handler.NewIngredientHandler(ingredientService).RegisterRoutes(api, authMiddleware)

	return &testEnv{
		router:   router,
		db:       db,
		auth:     authService,
		mediaDir: mediaDir,
	}
}

// createUserAndToken registers a user and logs them in
func (e *testEnv) createUserAndToken(t *testing.T, email string) (*models.User, string) {
	t.Helper()

	user, err := e.auth.Register(&service.RegisterRequest{
		Email:    email,
		Username: "test",
		Password: "secret1",
	})
	require.NoError(t, err)

	token, err := e.auth.Login(&service.LoginRequest{Email: email, Password: "secret1"})
	require.NoError(t, err)

	return user, token.AccessToken
}

// doJSON performs a JSON request against the test router
func (e *testEnv) doJSON(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
}
