package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealstash/backend/internal/scraper"
	"github.com/mealstash/backend/internal/service"
)

type ImportHandler struct {
	importer service.IImportService
}

func NewImportHandler(importer service.IImportService) *ImportHandler {
	return &ImportHandler{importer: importer}
}

func (h *ImportHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.POST("/import", h.ImportRecipe)
		recipes.POST("/import/:id/resolve", h.ResolveImport)
	}
}

// ImportRecipe runs the import pipeline for the given URL. A clean import
// answers 201 with the persisted recipe; a duplicate answers 409 with the
// pending decision so the client can present both versions.
func (h *ImportHandler) ImportRecipe(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A url field is required"})
		return
	}

	outcome, err := h.importer.ImportFromURL(c.Request.Context(), req.URL)
	if err != nil {
		status, message := importErrorResponse(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	if outcome.Pending != nil {
		c.JSON(http.StatusConflict, gin.H{
			"pending_id":     outcome.Pending.ID,
			"existing":       outcome.Pending.Existing,
			"candidate":      outcome.Pending.Candidate,
			"matched_by_url": outcome.Pending.MatchedByURL,
		})
		return
	}
	c.JSON(http.StatusCreated, outcome.Recipe)
}

// ResolveImport applies the caller's decision to a pending import.
func (h *ImportHandler) ResolveImport(c *gin.Context) {
	pendingID := c.Param("id")

	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Action must be one of: create, update, cancel"})
		return
	}

	ctx := c.Request.Context()
	switch req.Action {
	case "create":
		recipe, err := h.importer.ConfirmNew(ctx, pendingID)
		if err != nil {
			h.resolveError(c, err)
			return
		}
		c.JSON(http.StatusCreated, recipe)
	case "update":
		recipe, err := h.importer.ConfirmUpdate(ctx, pendingID)
		if err != nil {
			h.resolveError(c, err)
			return
		}
		c.JSON(http.StatusOK, recipe)
	case "cancel":
		if err := h.importer.Cancel(ctx, pendingID); err != nil {
			h.resolveError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func (h *ImportHandler) resolveError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrPendingNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pending import not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve import"})
}

// importErrorResponse maps pipeline failures onto HTTP statuses: the
// caller's mistakes are 4xx, the remote site's failures are 502.
func importErrorResponse(err error) (int, string) {
	var fetchErr *scraper.FetchError
	var parseErr *scraper.ParseError

	switch {
	case errors.Is(err, scraper.ErrInvalidURL):
		return http.StatusBadRequest, "Invalid URL."
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway, "Could not fetch page: " + fetchErr.Reason
	case errors.Is(err, scraper.ErrNoRecipeFound):
		return http.StatusUnprocessableEntity, "No recipe found on that page."
	case errors.As(err, &parseErr):
		return http.StatusUnprocessableEntity, "Could not parse recipe data: " + parseErr.Reason
	default:
		return http.StatusInternalServerError, "Import failed"
	}
}
