package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"expensetracker/internal/config"
	"expensetracker/internal/database"
	"expensetracker/internal/logger"
	"expensetracker/internal/repository"
	"expensetracker/internal/seed"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := rootCmd().Execute(); err != nil {
		logger.Get().Fatalf("Migration error: %v", err)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the expense tracker database schema and seed data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(upCmd(), downCmd(), versionCmd(), seedCmd())
	return cmd
}

// loadDBConfig reads the environment into a database configuration.
func loadDBConfig() (*database.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return database.NewConfig(cfg)
}

// withMigrate runs fn against a migrate instance for the configured driver.
func withMigrate(fn func(m *migrate.Migrate) error) error {
	dbConfig, err := loadDBConfig()
	if err != nil {
		return err
	}
	m, err := database.NewMigrate(dbConfig)
	if err != nil {
		return err
	}
	defer database.CloseMigrate(m)
	return fn(m)
}

func upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withMigrate(func(m *migrate.Migrate) error {
				if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
					return fmt.Errorf("migration up failed: %w", err)
				}
				logger.Get().Info("Migrations applied successfully")
				return nil
			})
		},
	}
}

func downCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down [N]",
		Short: "Roll back the last N migrations (default 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			steps := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					return fmt.Errorf("invalid step count %q", args[0])
				}
				steps = n
			}
			return withMigrate(func(m *migrate.Migrate) error {
				if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
					return fmt.Errorf("migration down failed: %w", err)
				}
				logger.Get().Infof("Rolled back %d migration(s)", steps)
				return nil
			})
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withMigrate(func(m *migrate.Migrate) error {
				version, dirty, err := m.Version()
				if err != nil {
					return fmt.Errorf("failed to get version: %w", err)
				}
				logger.Get().Infof("Version: %d, Dirty: %v", version, dirty)
				return nil
			})
		},
	}
}

func seedCmd() *cobra.Command {
	var samples bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the default categories, and optionally sample expenses",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			dbConfig, err := loadDBConfig()
			if err != nil {
				return err
			}
			dbManager, err := database.NewManager(dbConfig)
			if err != nil {
				return err
			}
			defer func() { _ = dbManager.Close() }()

			if err := dbManager.RunMigrations(); err != nil {
				return err
			}

			db := dbManager.DB()
			expenses, err := repository.NewExpenseRepository(db)
			if err != nil {
				return err
			}
			res, err := seed.Run(repository.NewCategoryRepository(db), expenses, samples)
			if err != nil {
				return err
			}
			logger.Get().Infof("Seeded %d categories and %d expenses", res.Categories, res.Expenses)
			return nil
		},
	}
	cmd.Flags().BoolVar(&samples, "sample", false, "also insert sample expenses")
	return cmd
}
