package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/mealstash/backend/internal/models"
	"github.com/mealstash/backend/internal/scraper"
)

// ImportOutcome is the result of one import attempt: either the persisted
// recipe (Recipe set), or a suspended duplicate-resolution decision
// (Pending set). Exactly one of the two is non-nil.
type ImportOutcome struct {
	Recipe  *models.Recipe
	Pending *PendingImport
}

// ImportService runs the import pipeline end to end and owns the
// duplicate-resolution state machine. Stages take their collaborators by
// injection so tests can substitute fakes.
type ImportService struct {
	scraper *scraper.Scraper
	recipes IRecipeService
	images  ImageStore
	pending PendingStore
}

// NewImportService creates a new ImportService instance
func NewImportService(sc *scraper.Scraper, recipes IRecipeService, images ImageStore, pending PendingStore) *ImportService {
	return &ImportService{
		scraper: sc,
		recipes: recipes,
		images:  images,
		pending: pending,
	}
}

// ImportFromURL scrapes rawURL, acquires the recipe's image, and
// reconciles the candidate against the store:
//
//   - an existing record with the same source URL suspends the import
//     with MatchedByURL=true;
//   - otherwise an existing record with the same name suspends it with
//     MatchedByURL=false;
//   - otherwise the candidate is persisted directly.
//
// Image acquisition failure is non-fatal: the recipe proceeds without an
// image. There is no mutual exclusion between concurrent imports, so two
// simultaneous imports of the same URL can both pass the duplicate check
// and both persist; resolving that is left to a later manual import of
// the same URL, which will surface the duplicate.
func (s *ImportService) ImportFromURL(ctx context.Context, rawURL string) (*ImportOutcome, error) {
	candidate, imageURL, err := s.scraper.ScrapeURL(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if imageURL != "" {
		path, err := s.images.FetchAndStore(ctx, imageURL, candidate.ID)
		if err != nil {
			log.Printf("[ImportService] Image fetch failed for %s, proceeding without image: %v", rawURL, err)
		} else {
			candidate.Image = path
		}
	}

	existing, err := s.recipes.FindBySourceURL(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing source URL: %w", err)
	}
	if existing != nil {
		return s.suspend(ctx, existing, candidate, true)
	}

	existing, err = s.recipes.FindByName(ctx, candidate.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing name: %w", err)
	}
	if existing != nil {
		return s.suspend(ctx, existing, candidate, false)
	}

	created, err := s.recipes.CreateRecipe(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("failed to persist imported recipe: %w", err)
	}
	log.Printf("[ImportService] Imported %q from %s", created.Name, rawURL)
	return &ImportOutcome{Recipe: created}, nil
}

func (s *ImportService) suspend(ctx context.Context, existing, candidate *models.Recipe, matchedByURL bool) (*ImportOutcome, error) {
	pending := &PendingImport{
		ID:           uuid.NewString(),
		Existing:     *existing,
		Candidate:    *candidate,
		MatchedByURL: matchedByURL,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.pending.Save(ctx, pending); err != nil {
		return nil, fmt.Errorf("failed to save pending import: %w", err)
	}
	log.Printf("[ImportService] Import of %q suspended: duplicate matched by %s", candidate.Name, matchLabel(matchedByURL))
	return &ImportOutcome{Pending: pending}, nil
}

func matchLabel(matchedByURL bool) string {
	if matchedByURL {
		return "source URL"
	}
	return "name"
}

// ConfirmNew resolves a pending import by persisting the candidate as an
// additional, independent record with its own id.
func (s *ImportService) ConfirmNew(ctx context.Context, pendingID string) (*models.Recipe, error) {
	pending, err := s.pending.Get(ctx, pendingID)
	if err != nil {
		return nil, err
	}

	candidate := pending.Candidate
	created, err := s.recipes.CreateRecipe(ctx, &candidate)
	if err != nil {
		return nil, fmt.Errorf("failed to persist candidate recipe: %w", err)
	}

	if err := s.pending.Delete(ctx, pendingID); err != nil {
		log.Printf("[ImportService] Failed to drop resolved pending import %s: %v", pendingID, err)
	}
	return created, nil
}

// ConfirmUpdate resolves a pending import by merging the candidate into
// the existing record: the existing id, date added and created timestamps
// are kept, every content field is replaced with the candidate's value,
// and the updated timestamps are refreshed.
func (s *ImportService) ConfirmUpdate(ctx context.Context, pendingID string) (*models.Recipe, error) {
	pending, err := s.pending.Get(ctx, pendingID)
	if err != nil {
		return nil, err
	}

	merged := mergeForUpdate(&pending.Existing, &pending.Candidate)

	// The candidate's image was stored under its provisional id. Re-key
	// it to the surviving record's id so id-keyed lookups and deletes
	// find it; the rename replaces the existing record's old file.
	if pending.Candidate.Image != "" {
		path, err := s.images.Rename(pending.Candidate.ID, pending.Existing.ID)
		if err != nil {
			log.Printf("[ImportService] Failed to re-key image for %s, keeping existing image: %v", pending.Existing.ID, err)
			merged.Image = pending.Existing.Image
		} else {
			merged.Image = path
		}
	} else if pending.Existing.Image != "" {
		if err := s.images.Delete(pending.Existing.ID); err != nil {
			log.Printf("[ImportService] Failed to remove replaced image for %s: %v", pending.Existing.ID, err)
		}
	}

	updated, err := s.recipes.UpdateRecipe(ctx, merged)
	if err != nil {
		return nil, fmt.Errorf("failed to persist merged recipe: %w", err)
	}

	if err := s.pending.Delete(ctx, pendingID); err != nil {
		log.Printf("[ImportService] Failed to drop resolved pending import %s: %v", pendingID, err)
	}
	return updated, nil
}

// Cancel abandons a pending import, discarding the candidate and its
// already-fetched image.
func (s *ImportService) Cancel(ctx context.Context, pendingID string) error {
	pending, err := s.pending.Get(ctx, pendingID)
	if err != nil {
		return err
	}

	if pending.Candidate.Image != "" {
		if err := s.images.Delete(pending.Candidate.ID); err != nil {
			log.Printf("[ImportService] Failed to remove image of cancelled import %s: %v", pendingID, err)
		}
	}
	return s.pending.Delete(ctx, pendingID)
}

func mergeForUpdate(existing, candidate *models.Recipe) *models.Recipe {
	now := time.Now().UTC().Format(time.RFC3339)

	merged := *candidate
	merged.ID = existing.ID
	merged.DateAdded = existing.DateAdded
	merged.CreatedAt = existing.CreatedAt
	merged.DateUpdated = now
	merged.UpdatedAt = now
	return &merged
}
