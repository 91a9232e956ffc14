package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	MigrationsDir string

	// Receipts
	UploadDir      string
	MaxUploadBytes int64
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	driver := getEnv("DB_DRIVER", "postgres")
	defaultPort := "5432"
	if driver == "mysql" {
		defaultPort = "3306"
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		DBDriver:   driver,
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", defaultPort),
		DBUser:     getEnv("DB_USER", "expense"),
		DBPassword: getEnv("DB_PASSWORD", "expense"),
		DBName:     getEnv("DB_NAME", "expense_tracker"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),

		UploadDir: getEnv("UPLOAD_DIR", "uploads/receipts"),
	}

	maxMB, err := strconv.ParseInt(getEnv("MAX_UPLOAD_MB", "5"), 10, 64)
	if err != nil || maxMB <= 0 {
		log.Printf("Warning: invalid MAX_UPLOAD_MB value, falling back to 5\n")
		maxMB = 5
	}
	config.MaxUploadBytes = maxMB << 20

	return config, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
