package configs

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"ENVIRONMENT", "PORT", "BACKEND_URL", "API_TIMEOUT", "POLL_INTERVAL",
		"SESSION_TIMEOUT", "COOKIE_MAX_AGE", "TOTAL_LIVES", "ALLOWED_ORIGINS", "RATE_LIMIT_RPS",
		"RATE_LIMIT_BURST", "DATABASE_URL", "DB_MAX_CONNS"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Environment != "development" || !cfg.IsDevelopment() {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if cfg.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Port)
	}
	if cfg.BackendURL != "http://localhost:8080" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Errorf("PollInterval = %v, want 30s", cfg.PollInterval)
	}
	if cfg.TotalLives != 10 {
		t.Errorf("TotalLives = %d, want 10", cfg.TotalLives)
	}
	if len(cfg.AllowedOrigins) != 0 {
		t.Errorf("AllowedOrigins = %v, want empty", cfg.AllowedOrigins)
	}
	if cfg.DatabaseDSN != "" || cfg.DatabaseMaxConns != 10 {
		t.Errorf("database = %q/%d, want in-memory and 10 connections", cfg.DatabaseDSN, cfg.DatabaseMaxConns)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("BACKEND_URL", "https://api.thinkle.test/")
	t.Setenv("POLL_INTERVAL", "5s")
	t.Setenv("ALLOWED_ORIGINS", "https://a.test, ,https://b.test")
	t.Setenv("RATE_LIMIT_RPS", "0.5")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.IsDevelopment() {
		t.Error("expected production environment")
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.BackendURL != "https://api.thinkle.test" {
		t.Errorf("BackendURL = %q, trailing slash should be trimmed", cfg.BackendURL)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Errorf("PollInterval = %v, want 5s", cfg.PollInterval)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Errorf("AllowedOrigins = %v, want 2 entries", cfg.AllowedOrigins)
	}
	if cfg.RateLimitRPS != 0.5 {
		t.Errorf("RateLimitRPS = %v, want 0.5", cfg.RateLimitRPS)
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"PORT":          "80",
		"BACKEND_URL":   "not a url",
		"POLL_INTERVAL": "soon",
		"TOTAL_LIVES":   "0",
		"DB_MAX_CONNS":  "0",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(key, val)
			if _, err := LoadConfig(); err == nil {
				t.Errorf("LoadConfig() with %s=%q succeeded, want error", key, val)
			}
		})
	}
}
