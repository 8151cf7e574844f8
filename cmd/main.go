/*
Package main is the entry point for the Thinkle web client server.

It is responsible for loading configuration, initializing the global logging system,
opening the client storage (in memory, or PostgreSQL when DATABASE_URL is set), starting
the tab controller Manager and the HTTP server, and gracefully handling operating system
interrupt signals (SIGINT, SIGTERM) to ensure a smooth server shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"thinkle/internal/app/api"
	"thinkle/internal/app/db"
	"thinkle/internal/app/game"
	"thinkle/internal/app/storage"
	"thinkle/internal/configs"
	"thinkle/internal/handler"
	"thinkle/internal/pkg/limiter"
	"thinkle/internal/pkg/logx"
	"thinkle/internal/web"
)

// purgeInterval is how often expired storage values are removed.
const purgeInterval = time.Minute

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.IsDevelopment())
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Str("backend_url", cfg.BackendURL).
		Dur("poll_interval", cfg.PollInterval).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Bool("postgres", cfg.DatabaseDSN != "").
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tabs, devices := openStores(ctx, cfg)
	defer func() {
		if err := tabs.Close(); err != nil {
			logx.Error(err, "Failed to close tab storage")
		}
		if err := devices.Close(); err != nil {
			logx.Error(err, "Failed to close device storage")
		}
	}()

	go storage.RunJanitor(ctx, purgeInterval, tabs, devices)

	views, err := web.NewRenderer()
	if err != nil {
		logx.Fatal(err, "Failed to parse templates")
	}

	client := api.NewClient(cfg.BackendURL, cfg.APITimeout)

	// Initialize the tab controller Manager
	manager := game.NewManager(client, func(tabID string) game.Persister {
		return storage.NewBridge(tabs, tabID)
	}, cfg.SessionTimeout)

	rateLimiter := limiter.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	// Setup HTTP server and routes
	router := handler.Router(&handler.AppDeps{
		Config:  cfg,
		Manager: manager,
		API:     client,
		Vault:   storage.NewVault(devices),
		Views:   views,
		Limiter: rateLimiter,
	})

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.APITimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Thinkle web client starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Error(err, "Server forced to shutdown")
	}

	manager.Shutdown()

	logx.Info("Server gracefully stopped.")
}

// openStores returns the tab and device stores. Both share one PostgreSQL pool when a
// DSN is configured.
func openStores(ctx context.Context, cfg *configs.AppConfig) (tabs, devices storage.Store) {
	if cfg.DatabaseDSN == "" {
		logx.Info("Using in-memory client storage")
		return storage.NewMemoryStore(cfg.SessionTimeout), storage.NewMemoryStore(cfg.CookieMaxAge)
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseDSN, int32(cfg.DatabaseMaxConns))
	if err != nil {
		logx.Fatal(err, "Failed to open the database")
	}
	logx.Info("Using PostgreSQL client storage")

	return storage.NewPostgresStore(pool, "tab", cfg.SessionTimeout, false),
		storage.NewPostgresStore(pool, "device", cfg.CookieMaxAge, true)
}
