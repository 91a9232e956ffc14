package main

import (
	"fmt"
	"os"
	"time"

	"expensetracker/internal/config"
	"expensetracker/internal/database"
	"expensetracker/internal/logger"
	"expensetracker/internal/repository"
	"expensetracker/internal/server"
	"expensetracker/internal/services"
	"expensetracker/internal/storage"
	"expensetracker/internal/validator"
)

// @title           Expense Tracker API
// @version         1.0
// @description     Personal expense tracker: record expenses against categories, attach receipt images and explore spending on the dashboard.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig(appConfig)
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize repositories
	db := dbManager.DB()
	categoryRepo := repository.NewCategoryRepository(db)
	expenseRepo, err := repository.NewExpenseRepository(db)
	if err != nil {
		return fmt.Errorf("failed to create expense repository: %w", err)
	}

	receiptStore, err := storage.NewOsReceiptStore(appConfig.UploadDir)
	if err != nil {
		return fmt.Errorf("failed to prepare receipt storage: %w", err)
	}

	// Register custom binding tags before any route is served
	validator.Register()

	router := server.NewRouter(server.Services{
		Categories:     services.NewCategoryService(categoryRepo),
		Expenses:       services.NewExpenseService(expenseRepo, categoryRepo),
		Dashboard:      services.NewDashboardService(expenseRepo, time.Now),
		Receipts:       services.NewReceiptService(receiptStore, appConfig.MaxUploadBytes),
		Store:          dbManager,
		MaxUploadBytes: appConfig.MaxUploadBytes,
	})

	log.Infof("Starting Expense Tracker server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
