package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/michael-de-wit/mood-ring-backend/internal/broadcast"
	"github.com/michael-de-wit/mood-ring-backend/internal/config"
	"github.com/michael-de-wit/mood-ring-backend/internal/logging"
	"github.com/michael-de-wit/mood-ring-backend/internal/oura"
	"github.com/michael-de-wit/mood-ring-backend/internal/server"
	"github.com/michael-de-wit/mood-ring-backend/internal/timeseries"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func runGracefulShutdown(srv *server.Server, hub *broadcast.Hub) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		hub.Stop()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	client := oura.NewClient(cfg.OuraAPIBaseURL, cfg.OuraAccessToken, clock)
	svc := timeseries.NewService(client)
	state := timeseries.NewState(clock)
	hub := broadcast.NewHub()

	poller := timeseries.NewPoller(svc, state, hub, clock, cfg.PollInterval)
	webhook := oura.NewWebhookHandler(cfg.WebhookVerificationToken(), poller)

	srv := server.NewServer(cfg, svc, state, hub, webhook)

	poller.Start()
	slog.Info("Poller started", "interval", cfg.PollInterval)

	done := runGracefulShutdown(srv, hub)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
