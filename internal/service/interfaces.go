package service

import (
	"context"

	"github.com/mealstash/backend/internal/models"
)

// IRecipeService defines the interface for recipe store operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)
	GetRecipe(ctx context.Context, id string) (*models.Recipe, error)
	GetRecipeBySlug(ctx context.Context, slug string) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id string) error
	ListRecipes(ctx context.Context, filters *RecipeFilters) ([]*models.Recipe, error)
	FindBySourceURL(ctx context.Context, sourceURL string) (*models.Recipe, error)
	FindByName(ctx context.Context, name string) (*models.Recipe, error)
	FavoriteRecipe(ctx context.Context, id string) error
	UnfavoriteRecipe(ctx context.Context, id string) error
	GetFavoriteRecipes(ctx context.Context) ([]*models.Recipe, error)
}

// IImportService defines the interface for the import pipeline
type IImportService interface {
	ImportFromURL(ctx context.Context, rawURL string) (*ImportOutcome, error)
	ConfirmNew(ctx context.Context, pendingID string) (*models.Recipe, error)
	ConfirmUpdate(ctx context.Context, pendingID string) (*models.Recipe, error)
	Cancel(ctx context.Context, pendingID string) error
}

// ImageStore owns the image-file lifecycle, keyed by recipe id.
type ImageStore interface {
	FetchAndStore(ctx context.Context, imageURL, recipeID string) (string, error)
	// Rename re-keys a stored image to another recipe id, replacing any
	// image already stored under toID, and returns the new path.
	Rename(fromID, toID string) (string, error)
	Delete(recipeID string) error
	Path(recipeID string) (string, bool)
}

// PendingStore persists suspended imports awaiting a duplicate-resolution
// decision. Entries live until resolved or cancelled; resolution is
// caller-paced, so implementations must not expire them.
type PendingStore interface {
	Save(ctx context.Context, pending *PendingImport) error
	Get(ctx context.Context, id string) (*PendingImport, error)
	Delete(ctx context.Context, id string) error
}
