package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the catalog service.
type Config struct {
	OMDB      OMDBConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Port      string
}

// OMDBConfig holds OMDb API configuration.
type OMDBConfig struct {
	// APIKey has no fallback: an empty key is a first-class service state
	// (credential missing), not a startup failure.
	APIKey  string
	BaseURL string
}

// RedisConfig holds Redis configuration for the rate limiter.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RateLimitConfig bounds requests per client IP per window.
type RateLimitConfig struct {
	MaxRequests   int
	WindowSeconds int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	rateLimitMax, _ := strconv.Atoi(getEnv("RATE_LIMIT_MAX", "60"))
	rateLimitWindow, _ := strconv.Atoi(getEnv("RATE_LIMIT_WINDOW_SECONDS", "60"))

	cfg := &Config{
		OMDB: OMDBConfig{
			APIKey:  os.Getenv("OMDB_API_KEY"),
			BaseURL: getEnv("OMDB_BASE_URL", "https://www.omdbapi.com"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		RateLimit: RateLimitConfig{
			MaxRequests:   rateLimitMax,
			WindowSeconds: rateLimitWindow,
		},
		Port: getEnv("SERVER_PORT", "8080"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
