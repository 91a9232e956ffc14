package database

import (
	"strings"
	"testing"

	"expensetracker/internal/config"
)

func TestNewConfig(t *testing.T) {
	t.Run("rejects unknown driver", func(t *testing.T) {
		_, err := NewConfig(&config.Config{DBDriver: "oracle"})
		if err == nil {
			t.Fatal("expected error for unsupported driver")
		}
	})

	t.Run("postgres dsn and migration urls", func(t *testing.T) {
		cfg, err := NewConfig(&config.Config{
			DBDriver: "postgres", DBHost: "db", DBPort: "5432", DBUser: "u",
			DBPassword: "p", DBName: "expenses", DBSSLMode: "disable", MigrationsDir: "migrations",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(cfg.DSN(), "host=db port=5432") {
			t.Errorf("unexpected DSN: %s", cfg.DSN())
		}
		if cfg.MigrationURL() != "postgres://u:p@db:5432/expenses?sslmode=disable" {
			t.Errorf("unexpected migration URL: %s", cfg.MigrationURL())
		}
		if cfg.MigrationSource() != "file://migrations/postgres" {
			t.Errorf("unexpected migration source: %s", cfg.MigrationSource())
		}
	})

	t.Run("mysql dsn parses time", func(t *testing.T) {
		cfg, err := NewConfig(&config.Config{
			DBDriver: "mysql", DBHost: "db", DBPort: "3306", DBUser: "u",
			DBPassword: "p", DBName: "expenses", MigrationsDir: "migrations",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.DSN() != "u:p@tcp(db:3306)/expenses?charset=utf8mb4&parseTime=true&loc=UTC" {
			t.Errorf("unexpected DSN: %s", cfg.DSN())
		}
		if !strings.HasPrefix(cfg.MigrationURL(), "mysql://") {
			t.Errorf("unexpected migration URL: %s", cfg.MigrationURL())
		}
		if cfg.MigrationSource() != "file://migrations/mysql" {
			t.Errorf("unexpected migration source: %s", cfg.MigrationSource())
		}
	})
}
