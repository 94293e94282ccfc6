package api

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mealstash/backend/internal/scraper"
	"github.com/mealstash/backend/internal/service"
	"github.com/mealstash/backend/internal/testhelpers"
)

// mapFetcher serves canned pages keyed by URL and a FetchError for
// anything else.
type mapFetcher struct {
	pages map[string]string
}

func (f *mapFetcher) FetchPage(ctx context.Context, url string) (string, error) {
	page, ok := f.pages[url]
	if !ok {
		return "", &scraper.FetchError{URL: url, Reason: "connection refused"}
	}
	return page, nil
}

// memoryImages is an in-process ImageStore for handler tests.
type memoryImages struct {
	mu     sync.Mutex
	stored map[string]string
}

func newMemoryImages() *memoryImages {
	return &memoryImages{stored: make(map[string]string)}
}

func (m *memoryImages) FetchAndStore(ctx context.Context, imageURL, recipeID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path := "/data/images/" + recipeID + ".jpg"
	m.stored[recipeID] = path
	return path, nil
}

func (m *memoryImages) Rename(fromID, toID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stored[fromID]; !ok {
		return "", fmt.Errorf("no image stored for %s", fromID)
	}
	delete(m.stored, fromID)
	path := "/data/images/" + toID + ".jpg"
	m.stored[toID] = path
	return path, nil
}

func (m *memoryImages) Delete(recipeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stored, recipeID)
	return nil
}

func (m *memoryImages) Path(recipeID string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path, ok := m.stored[recipeID]
	return path, ok
}

// setupTestRouter wires the full API against an in-memory database and
// the given canned pages.
func setupTestRouter(t *testing.T, pages map[string]string) (*gin.Engine, *service.RecipeService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)
	images := newMemoryImages()
	recipes := service.NewRecipeService(db, images)
	sc := scraper.New(&mapFetcher{pages: pages})
	importer := service.NewImportService(sc, recipes, images, service.NewMemoryPendingStore())

	router := gin.New()
	SetupAPI(router, recipes, importer, images)
	return router, recipes
}
