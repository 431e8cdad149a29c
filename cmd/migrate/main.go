package main

import (
	"log"
	"log/slog"

	"community-service/internal/adapters/database"
	"community-service/internal/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	slog.Info("Starting database migration...")

	db, err := database.NewPostgresConnection(cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	slog.Info("Database connection established")

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	slog.Info("Database migration completed successfully!")
}
