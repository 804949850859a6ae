// Package config centralizes environment-provided configuration.
// Values are read once at startup and passed into components as an
// immutable value; nothing in the application mutates a Config after Load.
package config

import (
	"os"
	"strconv"

	_ "github.com/joho/godotenv/autoload"
)

// Config holds all runtime settings for the service.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port int

	// GeminiAPIKey authenticates outbound model calls. When empty, every
	// request is served by the offline mock generator instead.
	GeminiAPIKey string

	// GeminiAPIURL overrides the model endpoint. Empty means the native
	// Gemini generateContent endpoint.
	GeminiAPIURL string

	// PlanCacheSize is the maximum number of generated plans kept in the
	// in-process LRU cache.
	PlanCacheSize int
}

// Load reads the configuration from the environment, applying defaults
// for anything unset.
func Load() Config {
	return Config{
		Port:          getEnvInt("PORT", 8080),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiAPIURL:  getEnv("GEMINI_API_URL", ""),
		PlanCacheSize: getEnvInt("PLAN_CACHE_SIZE", 128),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
