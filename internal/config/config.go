// Package config loads environment-driven settings for the server binary.
package config

import (
	"os"
	"strconv"
)

type Config struct {
	ListenAddr string

	// Database is the Postgres DSN for the session results store. Empty
	// disables persistence; the engine runs fine without it.
	DatabaseURL string

	// ExplainURL is the base URL of the grounded-explanation composer.
	// Empty means the deterministic template composer is used alone.
	ExplainURL string

	// Seed fixes the session PRNG for reproducible runs; 0 means a fresh
	// seed per session.
	Seed int64

	Log struct {
		Level  string
		Format string
	}
}

func Load() *Config {
	cfg := &Config{}
	cfg.ListenAddr = getEnv("PEDSIM_LISTEN_ADDR", ":8080")
	cfg.DatabaseURL = getEnv("PEDSIM_DATABASE_URL", "")
	cfg.ExplainURL = getEnv("PEDSIM_EXPLAIN_URL", "")
	cfg.Log.Level = getEnv("PEDSIM_LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("PEDSIM_LOG_FORMAT", "json")

	if raw := getEnv("PEDSIM_SEED", ""); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			cfg.Seed = v
		}
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
