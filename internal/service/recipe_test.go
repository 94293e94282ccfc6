package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mealstash/backend/internal/models"
	"github.com/mealstash/backend/internal/testhelpers"
)

func newTestRecipe(name, sourceURL string) *models.Recipe {
	id := uuid.NewString()
	return &models.Recipe{
		ID:          id,
		Slug:        "slug-" + id[:8],
		Name:        name,
		Description: "A test recipe",
		Categories:  models.JSONBCategories{{ID: uuid.NewString(), Name: "dinner", Slug: "dinner"}},
		Tags:        models.JSONBTags{{ID: uuid.NewString(), Name: "quick", Slug: "quick"}},
		DateAdded:   "2024-01-01T00:00:00Z",
		DateUpdated: "2024-01-01T00:00:00Z",
		CreatedAt:   "2024-01-01T00:00:00Z",
		UpdatedAt:   "2024-01-01T00:00:00Z",
		SourceURL:   sourceURL,
	}
}

func setupRecipeService(t *testing.T) (*RecipeService, *fakeImages) {
	t.Helper()
	images := newFakeImages()
	return NewRecipeService(testhelpers.SetupTestDB(t), images), images
}

func TestRecipeCRUD(t *testing.T) {
	svc, _ := setupRecipeService(t)
	ctx := context.Background()

	recipe := newTestRecipe("Shakshuka", "https://example.com/shakshuka")
	created, err := svc.CreateRecipe(ctx, recipe)
	require.NoError(t, err)

	fetched, err := svc.GetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shakshuka", fetched.Name)
	require.Len(t, fetched.Categories, 1)
	assert.Equal(t, "dinner", fetched.Categories[0].Name)

	bySlug, err := svc.GetRecipeBySlug(ctx, recipe.Slug)
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	fetched.Description = "Eggs poached in tomato sauce"
	_, err = svc.UpdateRecipe(ctx, fetched)
	require.NoError(t, err)

	again, err := svc.GetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Eggs poached in tomato sauce", again.Description)

	require.NoError(t, svc.DeleteRecipe(ctx, created.ID))
	_, err = svc.GetRecipe(ctx, created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteRecipeRemovesStoredImage(t *testing.T) {
	svc, images := setupRecipeService(t)
	ctx := context.Background()

	recipe := newTestRecipe("Shakshuka", "")
	_, err := images.FetchAndStore(ctx, "https://img.example.com/pic.jpg", recipe.ID)
	require.NoError(t, err)
	recipe.Image, _ = images.Path(recipe.ID)

	_, err = svc.CreateRecipe(ctx, recipe)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteRecipe(ctx, recipe.ID))

	assert.Contains(t, images.deleted, recipe.ID)
	_, ok := images.Path(recipe.ID)
	assert.False(t, ok)
}

func TestDeleteRecipeRemovesFavoriteMark(t *testing.T) {
	svc, _ := setupRecipeService(t)
	ctx := context.Background()

	recipe := newTestRecipe("Shakshuka", "")
	_, err := svc.CreateRecipe(ctx, recipe)
	require.NoError(t, err)
	require.NoError(t, svc.FavoriteRecipe(ctx, recipe.ID))

	require.NoError(t, svc.DeleteRecipe(ctx, recipe.ID))

	favorites, err := svc.GetFavoriteRecipes(ctx)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestFindBySourceURL(t *testing.T) {
	svc, _ := setupRecipeService(t)
	ctx := context.Background()

	_, err := svc.CreateRecipe(ctx, newTestRecipe("Shakshuka", "https://example.com/shakshuka"))
	require.NoError(t, err)

	found, err := svc.FindBySourceURL(ctx, "https://example.com/shakshuka")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Shakshuka", found.Name)

	missing, err := svc.FindBySourceURL(ctx, "https://example.com/other")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFindByName(t *testing.T) {
	svc, _ := setupRecipeService(t)
	ctx := context.Background()

	_, err := svc.CreateRecipe(ctx, newTestRecipe("Shakshuka", ""))
	require.NoError(t, err)

	found, err := svc.FindByName(ctx, "Shakshuka")
	require.NoError(t, err)
	require.NotNil(t, found)

	// Exact match only.
	missing, err := svc.FindByName(ctx, "shakshuka")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListRecipesFilters(t *testing.T) {
	svc, _ := setupRecipeService(t)
	ctx := context.Background()

	pancakes := newTestRecipe("Pancakes", "")
	pancakes.Categories = models.JSONBCategories{{ID: uuid.NewString(), Name: "breakfast", Slug: "breakfast"}}
	pancakes.Tags = models.JSONBTags{{ID: uuid.NewString(), Name: "sweet", Slug: "sweet"}}
	_, err := svc.CreateRecipe(ctx, pancakes)
	require.NoError(t, err)

	stew := newTestRecipe("Beef Stew", "")
	stew.Description = "Slow cooked comfort food"
	_, err = svc.CreateRecipe(ctx, stew)
	require.NoError(t, err)

	all, err := svc.ListRecipes(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byQuery, err := svc.ListRecipes(ctx, &RecipeFilters{Query: "slow cooked"})
	require.NoError(t, err)
	require.Len(t, byQuery, 1)
	assert.Equal(t, "Beef Stew", byQuery[0].Name)

	byCategory, err := svc.ListRecipes(ctx, &RecipeFilters{Category: "breakfast"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Pancakes", byCategory[0].Name)

	byTag, err := svc.ListRecipes(ctx, &RecipeFilters{Tag: "sweet"})
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, "Pancakes", byTag[0].Name)

	none, err := svc.ListRecipes(ctx, &RecipeFilters{Query: "nonexistent"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFavorites(t *testing.T) {
	svc, _ := setupRecipeService(t)
	ctx := context.Background()

	recipe := newTestRecipe("Shakshuka", "")
	_, err := svc.CreateRecipe(ctx, recipe)
	require.NoError(t, err)

	require.NoError(t, svc.FavoriteRecipe(ctx, recipe.ID))
	// Favoriting twice is a no-op.
	require.NoError(t, svc.FavoriteRecipe(ctx, recipe.ID))

	favorites, err := svc.GetFavoriteRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, recipe.ID, favorites[0].ID)

	require.NoError(t, svc.UnfavoriteRecipe(ctx, recipe.ID))
	favorites, err = svc.GetFavoriteRecipes(ctx)
	require.NoError(t, err)
	assert.Empty(t, favorites)

	err = svc.FavoriteRecipe(ctx, "missing-id")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
