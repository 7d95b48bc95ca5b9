package service_test

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/recipe-api/internal/models"
	"github.com/recipe-api/internal/repository"
	"github.com/recipe-api/internal/service"
	"github.com/recipe-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// One shared in-memory database per test, alive for the pool's lifetime
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
	))

	return db
}

func newRecipeService(t *testing.T, db *gorm.DB) *service.RecipeService {
	t.Helper()
	return service.NewRecipeService(
		repository.NewRecipeRepository(db),
		repository.NewTagRepository(db),
		repository.NewIngredientRepository(db),
		storage.NewImageStore(t.TempDir()),
	)
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		Username:     "test",
		PasswordHash: "x",
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func countTags(t *testing.T, db *gorm.DB, userID uint, name string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Tag{}).
		Where("user_id = ? AND name = ?", userID, name).Count(&count).Error)
	return count
}

func TestCreateRecipeWithNewTags(t *testing.T) {
	db := setupTestDB(t)
	svc := newRecipeService(t, db)
	user := createTestUser(t, db, "cook@example.com")

	recipe, err := svc.Create(user.ID, &service.CreateRecipeRequest{
		Title:       "Green curry",
		TimeMinutes: 30,
		Price:       12.50,
		Tags:        []service.AttrInput{{Name: "Thai"}, {Name: "Dinner"}},
	})
	require.NoError(t, err)

	require.Len(t, recipe.Tags, 2)
	names := []string{recipe.Tags[0].Name, recipe.Tags[1].Name}
	assert.ElementsMatch(t, []string{"Thai", "Dinner"}, names)
	assert.Equal(t, int64(1), countTags(t, db, user.ID, "Thai"))
	assert.Equal(t, int64(1), countTags(t, db, user.ID, "Dinner"))
}

func TestCreateRecipeReusesExistingTag(t *testing.T) {
	db := setupTestDB(t)
	svc := newRecipeService(t, db)
	user := createTestUser(t, db, "cook@example.com")

	existing := &models.Tag{UserID: user.ID, Name: "Indian"}
	require.NoError(t, db.Create(existing).Error)

	recipe, err := svc.Create(user.ID, &service.CreateRecipeRequest{
		Title:       "Pongal",
		TimeMinutes: 20,
		Price:       100,
		Tags:        []service.AttrInput{{Name: "Indian"}, {Name: "Breakfast"}},
	})
	require.NoError(t, err)

	require.Len(t, recipe.Tags, 2)
	assert.Equal(t, int64(1), countTags(t, db, user.ID, "Indian"))

	// The pre-existing row was reused, not shadowed by a new one
	for _, tag := range recipe.Tags {
		if tag.Name == "Indian" {
			assert.Equal(t, existing.ID, tag.ID)
		}
	}
}

func TestCreateRecipeDuplicateTagNamesCollapse(t *testing.T) {
	db := setupTestDB(t)
	svc := newRecipeService(t, db)
	user := createTestUser(t, db, "cook@example.com")

	recipe, err := svc.Create(user.ID, &service.CreateRecipeRequest{
		Title:       "Toast",
		TimeMinutes: 5,
		Price:       1,
		Tags:        []service.AttrInput{{Name: "Breakfast"}, {Name: "Breakfast"}},
	})
	require.NoError(t, err)

	assert.Len(t, recipe.Tags, 1)
	assert.Equal(t, int64(1), countTags(t, db, user.ID, "Breakfast"))
}

func TestUpdateTagsIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := newRecipeService(t, db)
	user := createTestUser(t, db, "cook@example.com")

	recipe, err := svc.Create(user.ID, &service.CreateRecipeRequest{
		Title:       "Stew",
		TimeMinutes: 90,
		Price:       8,
	})
	require.NoError(t, err)

	tags := []service.AttrInput{{Name: "Winter"}, {Name: "Comfort"}}
	first, err := svc.Update(user.ID, recipe.ID, &service.UpdateRecipeRequest{Tags: &tags})
	require.NoError(t, err)
	second, err := svc.Update(user.ID, recipe.ID, &service.UpdateRecipeRequest{Tags: &tags})
	require.NoError(t, err)

	assert.ElementsMatch(t, first.Tags, second.Tags)
	assert.Len(t, second.Tags, 2)
	assert.Equal(t, int64(1), countTags(t, db, user.ID, "Winter"))
	assert.Equal(t, int64(1), countTags(t, db, user.ID, "Comfort"))
}

func TestUpdateReplacesTagSet(t *testing.T) {
	db := setupTestDB(t)
	svc := newRecipeService(t, db)
	user := createTestUser(t, db, "cook@example.com")

	recipe, err := svc.Create(user.ID, &service.CreateRecipeRequest{
		Title:       "Salad",
		TimeMinutes: 10,
		Price:       4,
		Tags:        []service.AttrInput{{Name: "Lunch"}},
	})
	require.NoError(t, err)

	tags := []service.AttrInput{{Name: "Dinner"}}
	updated, err := svc.Update(user.ID, recipe.ID, &service.UpdateRecipeRequest{Tags: &tags})
	require.NoError(t, err)

	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "Dinner", updated.Tags[0].Name)

	// The old tag row outlives the association
	assert.Equal(t, int64(1), countTags(t, db, user.ID, "Lunch"))
}

func TestUpdateWithEmptyTagListClears(t *testing.T) {
	db := setupTestDB(t)
	svc := newRecipeService(t, db)
	user := createTestUser(t, db, "cook@example.com")

	recipe, err := svc.Create(user.ID, &service.CreateRecipeRequest{
		Title:       "Soup",
		TimeMinutes: 25,
		Price:       3,
		Tags:        []service.AttrInput{{Name: "Starter"}},
	})
	require.NoError(t, err)

	empty := []service.AttrInput{}
	updated, err := svc.Update(user.ID, recipe.ID, &service.UpdateRecipeRequest{Tags: &empty})
	require.NoError(t, err)

	assert.Empty(t, updated.Tags)
	assert.Equal(t, int64(1), countTags(t, db, user.ID, "Starter"))
}

func TestUpdateWithoutTagsFieldLeavesAssociations(t *testing.T) {
	db := setupTestDB(t)
	svc := newRecipeService(t, db)
	user := createTestUser(t, db, "cook@example.com")

	recipe, err := svc.Create(user.ID, &service.CreateRecipeRequest{
		Title:       "Pasta",
		TimeMinutes: 15,
		Price:       6,
		Tags:        []service.AttrInput{{Name: "Italian"}},
	})
	require.NoError(t, err)

	title := "Pasta al pomodoro"
	updated, err := svc.Update(user.ID, recipe.ID, &service.UpdateRecipeRequest{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "Pasta al pomodoro", updated.Title)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "Italian", updated.Tags[0].Name)
}

func TestUpdateReplacesIngredientSet(t *testing.T) {
	db := setupTestDB(t)
	svc := newRecipeService(t, db)
	user := createTestUser(t, db, "cook@example.com")

	recipe, err := svc.Create(user.ID, &service.CreateRecipeRequest{
		Title:       "Omelette",
		TimeMinutes: 8,
		Price:       2,
		Ingredients: []service.AttrInput{{Name: "Eggs"}, {Name: "Butter"}},
	})
	require.NoError(t, err)
	require.Len(t, recipe.Ingredients, 2)

	ingredients := []service.AttrInput{{Name: "Eggs"}, {Name: "Cheese"}}
	updated, err := svc.Update(user.ID, recipe.ID, &service.UpdateRecipeRequest{Ingredients: &ingredients})
	require.NoError(t, err)

	names := make([]string, len(updated.Ingredients))
	for i, in := range updated.Ingredients {
		names[i] = in.Name
	}
	assert.ElementsMatch(t, []string{"Eggs", "Cheese"}, names)

	// Eggs resolved to the same row, not a duplicate
	var count int64
	require.NoError(t, db.Model(&models.Ingredient{}).
		Where("user_id = ? AND name = ?", user.ID, "Eggs").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestListFiltersByTagAndIngredient(t *testing.T) {
	db := setupTestDB(t)
	svc := newRecipeService(t, db)
	user := createTestUser(t, db, "cook@example.com")

	curry, err := svc.Create(user.ID, &service.CreateRecipeRequest{
		Title:       "Curry",
		TimeMinutes: 40,
		Price:       9,
		Tags:        []service.AttrInput{{Name: "Dinner"}},
		Ingredients: []service.AttrInput{{Name: "Rice"}},
	})
	require.NoError(t, err)

	pancakes, err := svc.Create(user.ID, &service.CreateRecipeRequest{
		Title:       "Pancakes",
		TimeMinutes: 20,
		Price:       5,
		Tags:        []service.AttrInput{{Name: "Breakfast"}},
		Ingredients: []service.AttrInput{{Name: "Flour"}},
	})
	require.NoError(t, err)

	dinnerID := curry.Tags[0].ID
	riceID := curry.Ingredients[0].ID
	breakfastID := pancakes.Tags[0].ID

	// Tag filter keeps only matching recipes
	results, err := svc.List(user.ID, []uint{dinnerID}, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, curry.ID, results[0].ID)

	// Both filters apply together
	results, err = svc.List(user.ID, []uint{dinnerID}, []uint{riceID})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, curry.ID, results[0].ID)

	// AND across sets: breakfast tag with rice ingredient matches nothing
	results, err = svc.List(user.ID, []uint{breakfastID}, []uint{riceID})
	require.NoError(t, err)
	assert.Empty(t, results)

	// No filters lists everything, newest first
	results, err = svc.List(user.ID, nil, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, pancakes.ID, results[0].ID)
	assert.Equal(t, curry.ID, results[1].ID)
}

func TestListFilterDeduplicates(t *testing.T) {
	db := setupTestDB(t)
	svc := newRecipeService(t, db)
	user := createTestUser(t, db, "cook@example.com")

	recipe, err := svc.Create(user.ID, &service.CreateRecipeRequest{
		Title:       "Chili",
		TimeMinutes: 60,
		Price:       7,
		Tags:        []service.AttrInput{{Name: "Dinner"}, {Name: "Spicy"}},
	})
	require.NoError(t, err)

	// A recipe carrying both requested tags joins to two rows
	ids := []uint{recipe.Tags[0].ID, recipe.Tags[1].ID}
	results, err := svc.List(user.ID, ids, nil)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestListScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := newRecipeService(t, db)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")

	_, err := svc.Create(owner.ID, &service.CreateRecipeRequest{
		Title:       "Secret sauce",
		TimeMinutes: 5,
		Price:       1,
	})
	require.NoError(t, err)

	results, err := svc.List(other.ID, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGetOtherUsersRecipeNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newRecipeService(t, db)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")

	recipe, err := svc.Create(owner.ID, &service.CreateRecipeRequest{
		Title:       "Secret sauce",
		TimeMinutes: 5,
		Price:       1,
	})
	require.NoError(t, err)

	_, err = svc.Get(other.ID, recipe.ID)
	assert.ErrorIs(t, err, repository.ErrRecipeNotFound)

	title := "hijacked"
	_, err = svc.Update(other.ID, recipe.ID, &service.UpdateRecipeRequest{Title: &title})
	assert.ErrorIs(t, err, repository.ErrRecipeNotFound)

	err = svc.Delete(other.ID, recipe.ID)
	assert.ErrorIs(t, err, repository.ErrRecipeNotFound)

	// Untouched for the owner
	got, err := svc.Get(owner.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Secret sauce", got.Title)
}

func TestDeleteRecipeKeepsAttributeRows(t *testing.T) {
	db := setupTestDB(t)
	svc := newRecipeService(t, db)
	user := createTestUser(t, db, "cook@example.com")

	recipe, err := svc.Create(user.ID, &service.CreateRecipeRequest{
		Title:       "Cake",
		TimeMinutes: 50,
		Price:       15,
		Tags:        []service.AttrInput{{Name: "Dessert"}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(user.ID, recipe.ID))

	_, err = svc.Get(user.ID, recipe.ID)
	assert.ErrorIs(t, err, repository.ErrRecipeNotFound)
	assert.Equal(t, int64(1), countTags(t, db, user.ID, "Dessert"))
}

func TestTagsResolvedWithinOwnerScope(t *testing.T) {
	db := setupTestDB(t)
	svc := newRecipeService(t, db)
	userA := createTestUser(t, db, "a@example.com")
	userB := createTestUser(t, db, "b@example.com")

	recipeA, err := svc.Create(userA.ID, &service.CreateRecipeRequest{
		Title:       "Ramen",
		TimeMinutes: 45,
		Price:       11,
		Tags:        []service.AttrInput{{Name: "Dinner"}},
	})
	require.NoError(t, err)

	recipeB, err := svc.Create(userB.ID, &service.CreateRecipeRequest{
		Title:       "Pho",
		TimeMinutes: 120,
		Price:       10,
		Tags:        []service.AttrInput{{Name: "Dinner"}},
	})
	require.NoError(t, err)

	// Same name, different owners, distinct rows
	assert.NotEqual(t, recipeA.Tags[0].ID, recipeB.Tags[0].ID)
	assert.Equal(t, int64(1), countTags(t, db, userA.ID, "Dinner"))
	assert.Equal(t, int64(1), countTags(t, db, userB.ID, "Dinner"))
}
