// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Server
	ServerAddress string
	Environment   string

	// Document database
	MongoURI      string
	MongoDatabase string

	// Diagram viewport, pixels
	GraphWidth  int
	GraphHeight int

	// Logging
	LogLevel string

	// Authentication for mutating endpoints; empty secret disables it
	JWTSecret string
	JWTIssuer string

	// Requests per minute per client IP
	RateLimitPerMinute int

	EnableCORS bool
}

// LoadConfig reads configuration from the environment, after loading a
// local .env file when one exists.
func LoadConfig() (*Config, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		MongoURI:      getEnv("MONGODB_URI", ""),
		MongoDatabase: getEnv("MONGODB_DATABASE", "datacloud"),

		GraphWidth:  getEnvInt("GRAPH_WIDTH", 1200),
		GraphHeight: getEnvInt("GRAPH_HEIGHT", 800),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "datacloud"),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),

		EnableCORS: getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required configuration is present. Outside
// production an empty MongoURI selects the in-memory repository.
func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.MongoURI == "" {
			return fmt.Errorf("MONGODB_URI is required in production")
		}
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
	}
	if c.GraphWidth <= 0 || c.GraphHeight <= 0 {
		return fmt.Errorf("graph dimensions must be positive")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
