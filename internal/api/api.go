package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mealstash/backend/internal/service"
)

// SetupAPI registers all v1 routes on the given engine.
func SetupAPI(router *gin.Engine, recipes service.IRecipeService, importer service.IImportService, images service.ImageStore) {
	v1 := router.Group("/api/v1")
	{
		recipeHandler := NewRecipeHandler(recipes, images)
		importHandler := NewImportHandler(importer)

		recipeHandler.RegisterRoutes(v1)
		importHandler.RegisterRoutes(v1)
	}
}
