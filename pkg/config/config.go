package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Extraction ExtractionConfig
	Database   DatabaseConfig
}

type ExtractionConfig struct {
	Locale     string // "pt-br" or "en-us"
	OutputPath string // default CSV table path
	Enhanced   bool   // emit category/location columns
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first when present; real environment variables
// win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Extraction: ExtractionConfig{
			Locale:     getEnv("FATURA_LOCALE", "pt-br"),
			OutputPath: getEnv("FATURA_OUTPUT", "statements.csv"),
			Enhanced:   getEnvAsBool("FATURA_ENHANCED", false),
		},
		Database: DatabaseConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvAsInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", "postgres"),
			Database: getEnv("POSTGRES_DB", "fatura"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
	}

	if cfg.Extraction.Locale != "pt-br" && cfg.Extraction.Locale != "en-us" {
		return nil, fmt.Errorf("FATURA_LOCALE must be pt-br or en-us, got %q", cfg.Extraction.Locale)
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
