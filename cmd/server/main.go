package main

// @title           Community Poll Service API
// @version         1.0
// @description     Apartment community poll and voting backend
// @host            localhost:8080
// @BasePath        /api/v1
// @schemes         http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"community-service/internal/adapters/database"
	"community-service/internal/adapters/kafka"
	"community-service/internal/config"
	"community-service/internal/server"
	"community-service/internal/server/handlers"
	"community-service/internal/server/repository"
	"community-service/internal/server/scheduler"
	"community-service/internal/server/service"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger := slog.Default()
	logger.Info("Starting community poll server")

	// Initialize PostgreSQL connection
	db, err := database.NewPostgresConnection(cfg.Database.DSN())
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	// Initialize Redis connection (guards duplicate result notices)
	var redisClient *goredis.Client
	if cfg.Redis.Enabled {
		redisClient, err = database.NewRedisConnection(cfg.Redis.URL)
		if err != nil {
			logger.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
	}

	// Initialize Kafka event publisher
	var events service.EventPublisher
	if cfg.Kafka.Enabled {
		producer, err := kafka.InitKafkaProducer(cfg.Kafka.Brokers)
		if err != nil {
			logger.Error("Failed to connect to Kafka", "error", err)
			os.Exit(1)
		}
		publisher := kafka.NewPublisher(producer, cfg.Kafka.Topic)
		defer publisher.Close()
		events = publisher
	}

	// Initialize repositories
	pollRepo := repository.NewPollRepository(db)
	optionRepo := repository.NewOptionRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	userRepo := repository.NewUserRepository(db)
	apartmentRepo := repository.NewApartmentRepository(db)
	noticeRepo := repository.NewNoticeRepository(db)

	// Initialize services
	scopeService := service.NewScopeService(userRepo)
	pollService := service.NewPollService(pollRepo, userRepo, apartmentRepo, scopeService, logger)
	voteService := service.NewVoteService(voteRepo, optionRepo, pollRepo, userRepo, events, logger)
	noticeService := service.NewNoticeService(noticeRepo)

	// Initialize the expiry scheduler
	pollScheduler := scheduler.NewPollScheduler(pollRepo, noticeService, redisClient, events, scheduler.Config{
		Interval:        cfg.Scheduler.Interval,
		ResultBoardID:   cfg.Scheduler.ResultBoardID,
		NoticeMaxLength: cfg.Scheduler.NoticeMaxLength,
	}, logger)
	go pollScheduler.Run()

	// Initialize router with all dependencies
	router := gin.Default()
	server.SetupRoutes(
		router,
		cfg.JWT.Secret,
		handlers.NewPollHandler(pollService),
		handlers.NewVoteHandler(voteService),
		handlers.NewAdminHandler(pollScheduler),
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop the expiry scheduler
	pollScheduler.Stop()

	// Shutdown HTTP server
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server stopped")
}
