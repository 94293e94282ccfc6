package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mealstash/backend/internal/models"
	"github.com/mealstash/backend/internal/service"
)

type RecipeHandler struct {
	recipes service.IRecipeService
	images  service.ImageStore
}

func NewRecipeHandler(recipes service.IRecipeService, images service.ImageStore) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		images:  images,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/favorites", h.GetFavorites)
		recipes.GET("/slug/:slug", h.GetRecipeBySlug)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", h.CreateRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.GET("/:id/image", h.GetRecipeImage)
		recipes.POST("/:id/favorite", h.FavoriteRecipe)
		recipes.DELETE("/:id/favorite", h.UnfavoriteRecipe)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filters := &service.RecipeFilters{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
	}

	recipes, err := h.recipes.ListRecipes(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) GetRecipeBySlug(c *gin.Context) {
	recipe, err := h.recipes.GetRecipeBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var recipe models.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.recipes.CreateRecipe(c.Request.Context(), &recipe)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id := c.Param("id")

	existing, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	var recipe models.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	recipe.ID = existing.ID

	updated, err := h.recipes.UpdateRecipe(c.Request.Context(), &recipe)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	err := h.recipes.DeleteRecipe(c.Request.Context(), c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetRecipeImage serves the locally stored image file for a recipe.
func (h *RecipeHandler) GetRecipeImage(c *gin.Context) {
	path, ok := h.images.Path(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No image for this recipe"})
		return
	}
	c.File(path)
}

func (h *RecipeHandler) FavoriteRecipe(c *gin.Context) {
	err := h.recipes.FavoriteRecipe(c.Request.Context(), c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to favorite recipe"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) UnfavoriteRecipe(c *gin.Context) {
	if err := h.recipes.UnfavoriteRecipe(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfavorite recipe"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) GetFavorites(c *gin.Context) {
	recipes, err := h.recipes.GetFavoriteRecipes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}
