package main

import (
	"log"
	"log/slog"
	"time"

	"community-service/internal/adapters/database"
	"community-service/internal/config"
	"community-service/internal/ports/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	slog.Info("Starting database seeding...")

	db, err := database.NewPostgresConnection(cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	slog.Info("Database connection established")

	// Seed one apartment with its poll and notice boards
	apartment := &models.Apartment{Name: "Hangang Riverside", StartBuildingNo: 1, EndBuildingNo: 10}
	if err := db.Create(apartment).Error; err != nil {
		slog.Warn("Apartment might already exist", "error", err)
	} else {
		slog.Info("Created apartment", "id", apartment.ID)
	}

	boards := []models.Board{
		{ApartmentID: apartment.ID, Type: models.BoardTypePoll, Name: "Polls"},
		{ApartmentID: apartment.ID, Type: models.BoardTypeNotice, Name: "Notices"},
	}
	for i := range boards {
		if err := db.Create(&boards[i]).Error; err != nil {
			slog.Warn("Board might already exist", "type", boards[i].Type, "error", err)
		} else {
			slog.Info("Created board", "type", boards[i].Type, "id", boards[i].ID)
		}
	}

	// Seed users
	slog.Info("Creating initial users...")

	users := []struct {
		name     string
		email    string
		role     string
		building string
	}{
		{"admin", "admin@community.local", models.RoleAdmin, ""},
		{"alice", "alice@community.local", models.RoleUser, "1"},
		{"bob", "bob@community.local", models.RoleUser, "2"},
		{"charlie", "charlie@community.local", models.RoleUser, "3"},
	}

	for _, userData := range users {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
		user := &models.User{
			ApartmentID: &apartment.ID,
			Name:        userData.name,
			Email:       userData.email,
			Password:    string(hashedPassword),
			Role:        userData.role,
		}
		if userData.building != "" {
			building := userData.building
			user.ResidentBuilding = &building
		}

		if err := db.Create(user).Error; err != nil {
			slog.Warn("User might already exist", "name", userData.name, "error", err)
		} else {
			slog.Info("Created user", "name", userData.name, "id", user.ID)
		}
	}

	// Seed one open poll
	slog.Info("Creating sample poll...")
	if err := seedSamplePoll(db, apartment.ID, boards[0].ID); err != nil {
		slog.Warn("Failed to seed sample poll", "error", err)
	}

	slog.Info("Database seeding completed successfully!")
}

func seedSamplePoll(db *gorm.DB, apartmentID, boardID uint) error {
	var admin models.User
	if err := db.Where("email = ?", "admin@community.local").First(&admin).Error; err != nil {
		return err
	}

	now := time.Now()
	poll := &models.Poll{
		BoardID:    boardID,
		AuthorID:   admin.ID,
		AuthorName: admin.Name,
		Title:      "Playground renovation vendor",
		Content:    "Pick the vendor for the playground renovation.",
		StartDate:  now,
		EndDate:    now.Add(7 * 24 * time.Hour),
		Status:     models.PollStatusPending,
		Options: []models.PollOption{
			{Title: "GreenPlay Co."},
			{Title: "SafeGround Ltd."},
		},
	}
	return db.Create(poll).Error
}
