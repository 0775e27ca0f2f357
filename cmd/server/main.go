package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/pscheid92/salespulse/internal/adapter/crm"
	"github.com/pscheid92/salespulse/internal/adapter/httpserver"
	"github.com/pscheid92/salespulse/internal/app"
	"github.com/pscheid92/salespulse/internal/platform/config"
	"github.com/pscheid92/salespulse/internal/platform/logging"
	"github.com/pscheid92/salespulse/internal/platform/version"
	"github.com/pscheid92/salespulse/internal/store"
)

const (
	initialFetchTimeout = 30 * time.Second
	shutdownTimeout     = 10 * time.Second
)

func main() {
	cfg := setupConfig()
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	info := version.Get()
	slog.Info("Starting salespulse", "version", info.Version, "commit", info.Commit, "env", cfg.AppEnv)

	clock := clockwork.NewRealClock()
	entities := store.New(clock)
	source := crm.NewClient(cfg.DataSourceURL, cfg.FetchTimeout)
	service := app.NewService(source, entities)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Warm the store before serving; failures are per-resource states, not
	// fatal — the API reports loading/failed until a refresh succeeds.
	go func() {
		fetchCtx, fetchCancel := context.WithTimeout(ctx, initialFetchTimeout)
		defer fetchCancel()
		if err := service.RefreshAll(fetchCtx); err != nil {
			slog.Warn("Initial fetch incomplete", "error", err)
		}
	}()

	ticker := app.NewRefreshTicker(service, clock, cfg.RefreshInterval)
	go ticker.Run(ctx)

	srv := httpserver.NewServer(cfg, service)

	done := runGracefulShutdown(srv, cancel)

	if err := srv.Start(); err != nil {
		slog.Error("Server stopped", "error", err)
	}

	<-done
	slog.Info("Shutdown complete")
}

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func runGracefulShutdown(srv *httpserver.Server, cancel context.CancelFunc) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}
