// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the knobs for the HTTP server and external collaborators.
type Config struct {
	Port              string
	DatabaseURL       string
	RedisAddr         string
	GeoapifyAPIKey    string
	SeedPath          string
	SelectedVendorTTL time.Duration
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durenvs(key string, defSec int) time.Duration {
	v := Get(key, "")
	if v == "" {
		return time.Duration(defSec) * time.Second
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return time.Duration(defSec) * time.Second
	}
	return time.Duration(n) * time.Second
}

// Load collects configuration from environment with defaults.
// DATABASE_URL and GEOAPIFY_API_KEY have no defaults; callers decide whether
// their absence is fatal.
func Load() Config {
	return Config{
		Port:              Get("PORT", "8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisAddr:         Get("REDIS_ADDR", ""),
		GeoapifyAPIKey:    os.Getenv("GEOAPIFY_API_KEY"),
		SeedPath:          Get("SEED_PATH", "data/seeds/store.json"),
		SelectedVendorTTL: durenvs("SELECTED_VENDOR_TTL_SECONDS", 86400),
	}
}
