package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Logging   LoggingConfig
	Rates     RatesConfig
	Scheduler SchedulerConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
}

// RatesConfig holds exchange-rate provider configuration. The API token is
// stored encrypted in the database; FernetKey is the base64 key that decrypts
// it.
type RatesConfig struct {
	BaseURL   string
	FernetKey string
}

// SchedulerConfig holds the cron expressions for the background jobs.
type SchedulerConfig struct {
	SummaryRebuildSpec string
	RatesRefreshSpec   string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/tax_engine.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitEnv("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:3000",
				"http://localhost",
			}),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Rates: RatesConfig{
			BaseURL:   getEnv("RATES_BASE_URL", "https://api.exchangerate.host"),
			FernetKey: os.Getenv("RATES_FERNET_KEY"),
		},
		Scheduler: SchedulerConfig{
			// Nightly summary rebuild at 02:30, rates refresh at 06:00.
			SummaryRebuildSpec: getEnv("SUMMARY_REBUILD_CRON", "30 2 * * *"),
			RatesRefreshSpec:   getEnv("RATES_REFRESH_CRON", "0 6 * * *"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// splitEnv gets a comma-separated environment variable or returns a default list
func splitEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
