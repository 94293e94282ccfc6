package scraper

import (
	"context"
	"log"
	"net/url"

	"github.com/mealstash/backend/internal/models"
)

// Scraper runs the import pipeline over a recipe-website page: fetch,
// JSON-LD extraction, Recipe-node location, normalization. The fetcher is
// injected so tests can substitute a canned page source.
type Scraper struct {
	fetcher Fetcher
}

// New creates a Scraper. A nil fetcher falls back to the default HTTP
// client.
func New(fetcher Fetcher) *Scraper {
	if fetcher == nil {
		fetcher = &Client{}
	}
	return &Scraper{fetcher: fetcher}
}

// ScrapeURL fetches the page at rawURL and scrapes it. The returned
// string is the recipe's resolved image URL ("" when the page declares
// none).
func (s *Scraper) ScrapeURL(ctx context.Context, rawURL string) (*models.Recipe, string, error) {
	parsed, err := url.ParseRequestURI(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, "", ErrInvalidURL
	}

	page, err := s.fetcher.FetchPage(ctx, rawURL)
	if err != nil {
		return nil, "", err
	}

	return s.ScrapeHTML(page, rawURL)
}

// ScrapeHTML scrapes an already-fetched page. Exposed separately so the
// pipeline past the fetch suspension point is testable on raw HTML.
func (s *Scraper) ScrapeHTML(page, sourceURL string) (*models.Recipe, string, error) {
	values, skipped := ExtractJSONLD(page)
	if skipped > 0 {
		log.Printf("[Scraper] %s: %d JSON-LD block(s) skipped as malformed", sourceURL, skipped)
	}

	node, ok := FindRecipeNode(values)
	if !ok {
		return nil, "", ErrNoRecipeFound
	}

	recipe, imageURL := NormalizeRecipe(node, sourceURL)
	return recipe, imageURL, nil
}
