package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OMDB_API_KEY", "")
	t.Setenv("OMDB_BASE_URL", "")
	t.Setenv("SERVER_PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	// The API key deliberately has no fallback: absence is a service state.
	if cfg.OMDB.APIKey != "" {
		t.Errorf("expected empty API key, got %q", cfg.OMDB.APIKey)
	}
	if cfg.OMDB.BaseURL != "https://www.omdbapi.com" {
		t.Errorf("unexpected base URL: %q", cfg.OMDB.BaseURL)
	}
	if cfg.Port != "8080" {
		t.Errorf("unexpected port: %q", cfg.Port)
	}
	if cfg.RateLimit.MaxRequests != 60 || cfg.RateLimit.WindowSeconds != 60 {
		t.Errorf("unexpected rate limit defaults: %+v", cfg.RateLimit)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("OMDB_API_KEY", "abc123")
	t.Setenv("OMDB_BASE_URL", "http://localhost:9999")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("RATE_LIMIT_MAX", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.OMDB.APIKey != "abc123" {
		t.Errorf("unexpected API key: %q", cfg.OMDB.APIKey)
	}
	if cfg.OMDB.BaseURL != "http://localhost:9999" {
		t.Errorf("unexpected base URL: %q", cfg.OMDB.BaseURL)
	}
	if cfg.Port != "9090" {
		t.Errorf("unexpected port: %q", cfg.Port)
	}
	if cfg.Redis.Addr != "redis:6379" {
		t.Errorf("unexpected redis addr: %q", cfg.Redis.Addr)
	}
	if cfg.RateLimit.MaxRequests != 10 {
		t.Errorf("unexpected rate limit: %d", cfg.RateLimit.MaxRequests)
	}
}
