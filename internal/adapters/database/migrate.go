package database

import (
	"fmt"

	"community-service/internal/ports/models"

	"gorm.io/gorm"
)

// Migrate runs database migrations for all models
func Migrate(db *gorm.DB) error {
	modelsToMigrate := []interface{}{
		&models.Apartment{},
		&models.Board{},
		&models.User{},
		&models.Poll{},
		&models.PollOption{},
		&models.Vote{},
		&models.Notice{},
	}

	for _, model := range modelsToMigrate {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model: %w", err)
		}
	}

	return nil
}
