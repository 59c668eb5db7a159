package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	Port           string
	DatabaseURL    string
	MapsAPIKey     string
	YelpAPIKey     string
	SessionSecret  string
	SessionTTL     time.Duration
	RateLimitProxy RateLimitConfig
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	CacheTTL       time.Duration
	RevealInterval time.Duration
}

// Load reads configuration from environment variables and applies sane defaults.
// The upstream API keys are deliberately not validated here: a missing key
// simply fails at the provider, matching the proxy contract.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MapsAPIKey:     os.Getenv("MAPS_API_KEY"),
		YelpAPIKey:     os.Getenv("YELP_API_KEY"),
		SessionSecret:  getEnv("SESSION_SECRET", "dev-secret"),
		SessionTTL:     parseDuration(getEnv("SESSION_TTL", "168h"), 168*time.Hour),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		CacheTTL:       parseDuration(getEnv("CACHE_TTL", "5m"), 5*time.Minute),
		RevealInterval: parseDuration(getEnv("REVEAL_INTERVAL", "500ms"), 500*time.Millisecond),
	}

	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}
	cfg.RedisDB = db

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_PROXY", "30/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PROXY value: %w", err)
	}
	cfg.RateLimitProxy = rl

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil {
		return fallback
	}
	return d
}
