package database

import (
	"log"

	"gorm.io/gorm"

	"github.com/mealstash/backend/internal/models"
)

// Migrate brings the schema up to date. The recipe tables carry their
// structured fields as JSON columns, so auto-migration covers both the
// postgres and sqlite dialects.
func Migrate(db *gorm.DB) error {
	log.Printf("[Database] Running migrations (%s)", db.Dialector.Name())
	return db.AutoMigrate(
		&models.Recipe{},
		&models.RecipeFavorite{},
	)
}
