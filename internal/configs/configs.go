/*
Package configs is responsible for loading and parsing the application's configuration settings.

Values are read from operating system environment variables, optionally seeded from a
local .env file. They cover the running environment, the listen port, the Thinkle backend
location, polling and session lifetimes, CORS origins, rate limits and the optional
PostgreSQL store.
*/
package configs

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig contains all configuration parameters required for the application to run.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int

	// Backend Settings
	BackendURL   string
	APITimeout   time.Duration
	PollInterval time.Duration

	// Session Settings
	SessionTimeout time.Duration
	CookieMaxAge   time.Duration
	TotalLives     int

	// Security Settings
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int

	// Database Settings (optional, in-memory storage is used when empty)
	DatabaseDSN      string
	DatabaseMaxConns int
}

// IsDevelopment reports whether the server runs in the development environment.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// LoadConfig reads and parses the application configuration from environment variables.
// A .env file in the working directory is loaded first when present; variables already
// set in the environment take precedence over it.
func LoadConfig() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{}

	// --- General Server Settings ---
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	port, err := getInt("PORT", 3000)
	if err != nil {
		return nil, err
	}
	if port < 1024 || port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", port, 1024, 65535)
	}
	cfg.Port = port

	// --- Backend Settings ---
	cfg.BackendURL = strings.TrimRight(os.Getenv("BACKEND_URL"), "/")
	if cfg.BackendURL == "" {
		cfg.BackendURL = "http://localhost:8080"
	}
	if u, err := url.Parse(cfg.BackendURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid BACKEND_URL %q: must be an absolute http(s) URL", cfg.BackendURL)
	}

	if cfg.APITimeout, err = getDuration("API_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.PollInterval, err = getDuration("POLL_INTERVAL", 30*time.Second); err != nil {
		return nil, err
	}

	// --- Session Settings ---
	if cfg.SessionTimeout, err = getDuration("SESSION_TIMEOUT", 2*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CookieMaxAge, err = getDuration("COOKIE_MAX_AGE", 30*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.TotalLives, err = getInt("TOTAL_LIVES", 10); err != nil {
		return nil, err
	}
	if cfg.TotalLives <= 0 {
		return nil, fmt.Errorf("TOTAL_LIVES must be positive, got %d", cfg.TotalLives)
	}

	// --- Security Settings ---
	if originsStr := os.Getenv("ALLOWED_ORIGINS"); originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{}
	}

	rpsStr := os.Getenv("RATE_LIMIT_RPS")
	if rpsStr == "" {
		rpsStr = "2"
	}
	if cfg.RateLimitRPS, err = strconv.ParseFloat(rpsStr, 64); err != nil || cfg.RateLimitRPS <= 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS environment variable: %q", rpsStr)
	}
	if cfg.RateLimitBurst, err = getInt("RATE_LIMIT_BURST", 10); err != nil {
		return nil, err
	}

	// --- Database Settings ---
	cfg.DatabaseDSN = os.Getenv("DATABASE_URL")
	if cfg.DatabaseMaxConns, err = getInt("DB_MAX_CONNS", 10); err != nil {
		return nil, err
	}
	if cfg.DatabaseMaxConns < 1 || cfg.DatabaseMaxConns > 100 {
		return nil, fmt.Errorf("DB_MAX_CONNS must be between 1 and 100, got %d", cfg.DatabaseMaxConns)
	}

	return cfg, nil
}

func getInt(key string, fallback int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return i, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %v", key, d)
	}
	return d, nil
}
