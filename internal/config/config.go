package config

import (
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	Storage StorageConfig
	Redis   RedisConfig
}

// StorageConfig holds filesystem paths for saves and templates
type StorageConfig struct {
	SavesDir     string
	TemplatesDir string
}

// RedisConfig holds Redis-specific configuration. Redis storage is
// optional: when URL is empty, character data stays on the filesystem.
type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Storage: StorageConfig{
			SavesDir:     getEnvOrDefault("TOOLKIT_SAVES_DIR", "saves"),
			TemplatesDir: getEnvOrDefault("TOOLKIT_TEMPLATES_DIR", "templates"),
		},
		Redis: RedisConfig{
			URL:      os.Getenv("REDIS_URL"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
		},
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
