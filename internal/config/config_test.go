package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEMINI_API_URL", "")
	t.Setenv("PLAN_CACHE_SIZE", "")

	cfg := Load()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "", cfg.GeminiAPIKey)
	assert.Equal(t, "", cfg.GeminiAPIURL)
	assert.Equal(t, 128, cfg.PlanCacheSize)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("GEMINI_API_URL", "https://example.com/v1/generate")
	t.Setenv("PLAN_CACHE_SIZE", "16")

	cfg := Load()
	assert.Equal(t, 9999, cfg.Port)
	assert.Equal(t, "secret", cfg.GeminiAPIKey)
	assert.Equal(t, "https://example.com/v1/generate", cfg.GeminiAPIURL)
	assert.Equal(t, 16, cfg.PlanCacheSize)
}

func TestLoad_BadIntsFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("PLAN_CACHE_SIZE", "-3")

	cfg := Load()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 128, cfg.PlanCacheSize)
}
