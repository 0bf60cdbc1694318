package config

import (
	"os"
	"strconv"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Data     DataConfig
	AI       AIConfig
	Database DatabaseConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

// DataConfig holds dataset and pipeline paths
type DataConfig struct {
	Dir          string
	RawDir       string
	ProcessedDir string
}

// AIConfig holds chat assistant settings. An empty APIKey switches the
// assistant to canned responses.
type AIConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
}

// DatabaseConfig holds warehouse connection settings
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from environment variables. Every field has a
// working default; nothing is required to run against the bundled dataset.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("PORT", "8000"),
			ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Data: DataConfig{
			Dir:          getEnvOrDefault("DATA_DIR", "data/sample"),
			RawDir:       getEnvOrDefault("RAW_DATA_DIR", "data/raw"),
			ProcessedDir: getEnvOrDefault("PROCESSED_DATA_DIR", "data/processed"),
		},
		AI: AIConfig{
			APIKey:    os.Getenv("ANTHROPIC_API_KEY"),
			Model:     getEnvOrDefault("LLM_MODEL", "claude-sonnet-4-5"),
			MaxTokens: getEnvIntOrDefault("MAX_TOKENS", 1024),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
