package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/mealstash/backend/internal/models"
)

// RecipeFilters narrows a recipe listing.
type RecipeFilters struct {
	Query    string
	Category string
	Tag      string
}

// RecipeService owns the canonical recipe store. Deleting a recipe also
// deletes its locally stored image so no orphaned file is left behind.
type RecipeService struct {
	db     *gorm.DB
	images ImageStore
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, images ImageStore) *RecipeService {
	return &RecipeService{
		db:     db,
		images: images,
	}
}

// CreateRecipe creates a new recipe
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// GetRecipeBySlug retrieves a recipe by its slug
func (s *RecipeService) GetRecipeBySlug(ctx context.Context, slug string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipe replaces the stored record with the given one.
func (s *RecipeService) UpdateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	if err := s.db.WithContext(ctx).Save(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// DeleteRecipe deletes a recipe together with its stored image.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id string) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ?", id).Error; err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.RecipeFavorite{}, "recipe_id = ?", id).Error; err != nil {
		log.Printf("[RecipeService] Failed to remove favorite mark for deleted recipe %s: %v", id, err)
	}

	if s.images != nil {
		if err := s.images.Delete(id); err != nil {
			return err
		}
	}
	return nil
}

// ListRecipes lists recipes, optionally filtered by a keyword query,
// category name or tag name.
func (s *RecipeService) ListRecipes(ctx context.Context, filters *RecipeFilters) ([]*models.Recipe, error) {
	query := s.db.WithContext(ctx)

	if filters != nil {
		if filters.Query != "" {
			like := "%" + strings.ToLower(filters.Query) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
		}
		if filters.Category != "" {
			query = query.Where(jsonColumnLike(s.db, "categories"), nameMatch(filters.Category))
		}
		if filters.Tag != "" {
			query = query.Where(jsonColumnLike(s.db, "tags"), nameMatch(filters.Tag))
		}
	}

	var recipes []models.Recipe
	if err := query.Order("name").Find(&recipes).Error; err != nil {
		return nil, err
	}

	result := make([]*models.Recipe, len(recipes))
	for i := range recipes {
		result[i] = &recipes[i]
	}
	return result, nil
}

// FindBySourceURL returns the recipe whose stored source URL equals the
// given URL, or nil when none exists.
func (s *RecipeService) FindBySourceURL(ctx context.Context, sourceURL string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).First(&recipe, "source_url = ?", sourceURL).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// FindByName returns the recipe with exactly the given name, or nil when
// none exists.
func (s *RecipeService) FindByName(ctx context.Context, name string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).First(&recipe, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// FavoriteRecipe marks a recipe as a favorite
func (s *RecipeService) FavoriteRecipe(ctx context.Context, id string) error {
	if _, err := s.GetRecipe(ctx, id); err != nil {
		return err
	}
	fav := models.RecipeFavorite{RecipeID: id}
	err := s.db.WithContext(ctx).Create(&fav).Error
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "unique") {
		return nil
	}
	return err
}

// UnfavoriteRecipe removes the favorite mark from a recipe
func (s *RecipeService) UnfavoriteRecipe(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.RecipeFavorite{}, "recipe_id = ?", id).Error
}

// GetFavoriteRecipes lists all favorited recipes
func (s *RecipeService) GetFavoriteRecipes(ctx context.Context) ([]*models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Joins("JOIN recipe_favorites ON recipe_favorites.recipe_id = recipes.id").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}

	result := make([]*models.Recipe, len(recipes))
	for i := range recipes {
		result[i] = &recipes[i]
	}
	return result, nil
}

// jsonColumnLike builds a case-insensitive LIKE over a JSONB column's
// text, branching on dialect the same way searches do elsewhere.
func jsonColumnLike(db *gorm.DB, column string) string {
	if db.Dialector.Name() == "postgres" {
		return "LOWER(" + column + "::text) LIKE ?"
	}
	return "LOWER(" + column + ") LIKE ?"
}

func nameMatch(name string) string {
	return "%\"name\":\"" + strings.ToLower(name) + "\"%"
}
