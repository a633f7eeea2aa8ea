package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bobby-s-dev/tomorrowio-client/internal/config"
	"github.com/bobby-s-dev/tomorrowio-client/internal/poller"
	"github.com/bobby-s-dev/tomorrowio-client/pkg/tomorrowio"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	zap.ReplaceGlobals(logger)
	logger.Info("Starting Tomorrow.io weather poller")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize client
	client, err := tomorrowio.NewClient(tomorrowio.Config{
		APIKey:         cfg.API.Key,
		Latitude:       cfg.Location.Latitude,
		Longitude:      cfg.Location.Longitude,
		UnitSystem:     cfg.UnitSystem,
		Endpoint:       cfg.API.Endpoint,
		HTTPClient:     &http.Client{Timeout: cfg.Client.Timeout},
		Logger:         logger,
		BreakerTimeout: cfg.Client.BreakerTimeout,
	})
	if err != nil {
		logger.Fatal("Failed to initialize client", zap.Error(err))
	}

	// Initialize poller
	weatherPoller := poller.New(client, cfg.Poll.Fields, func(values map[string]any) {
		fields := make([]zap.Field, 0, len(values)+1)
		for name, value := range values {
			fields = append(fields, zap.Any(name, value))
		}
		if remaining, ok := client.RateLimits().RemainingPerDay(); ok {
			fields = append(fields, zap.Int("requests_remaining_today", remaining))
		}
		logger.Info("Current conditions", fields...)
	}, logger)

	if err := weatherPoller.Start(cfg.Poll.Schedule); err != nil {
		logger.Fatal("Failed to start poller", zap.Error(err))
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	weatherPoller.Stop()
	logger.Info("Poller stopped")
}
