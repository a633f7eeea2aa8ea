package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	API struct {
		Key      string
		Endpoint string
	}

	Location struct {
		Latitude  float64
		Longitude float64
	}

	UnitSystem string
	LogLevel   string

	Poll struct {
		Schedule string
		Fields   []string
	}

	Client struct {
		Timeout        time.Duration
		BreakerTimeout time.Duration
	}
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		zap.L().Info("No .env file found, using environment variables")
	}

	cfg := &Config{}

	// Provider configuration
	cfg.API.Key = getEnv("TOMORROWIO_API_KEY", "")
	if cfg.API.Key == "" {
		return nil, fmt.Errorf("TOMORROWIO_API_KEY is required")
	}
	cfg.API.Endpoint = getEnv("TOMORROWIO_ENDPOINT", "")

	// Location and units
	cfg.Location.Latitude = parseFloat(getEnv("LATITUDE", "28.4195"))
	cfg.Location.Longitude = parseFloat(getEnv("LONGITUDE", "-81.5812"))
	cfg.UnitSystem = getEnv("UNIT_SYSTEM", "imperial")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	// Poller configuration
	cfg.Poll.Schedule = getEnv("POLL_SCHEDULE", "@every 15m")
	fields := getEnv("POLL_FIELDS", "temperature,humidity,windSpeed,weatherCode")
	cfg.Poll.Fields = strings.Split(fields, ",")

	// HTTP client configuration
	cfg.Client.Timeout = parseDuration(getEnv("HTTP_TIMEOUT", "10s"))
	cfg.Client.BreakerTimeout = parseDuration(getEnv("CIRCUIT_BREAKER_TIMEOUT", "30s"))

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		zap.L().Warn("Failed to parse duration", zap.String("value", value), zap.Error(err))
		return 0
	}
	return duration
}

func parseFloat(value string) float64 {
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		zap.L().Warn("Failed to parse float", zap.String("value", value), zap.Error(err))
		return 0
	}
	return floatValue
}
