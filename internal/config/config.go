// Package config loads runtime settings from the environment, overlaying
// development defaults.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds runtime settings for the pokedex server.
type Config struct {
	Addr              string
	DatabaseDSN       string
	TokenSecret       string
	TokenTTL          time.Duration
	PokeAPIBaseURL    string
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// loadDefaults populates Config with development defaults.
// NOTE: TokenSecret must be overridden outside development.
func (c *Config) loadDefaults() {
	c.Addr = ":8080"
	c.DatabaseDSN = ""
	c.TokenSecret = "dev-secret"
	c.TokenTTL = 20 * time.Minute
	c.PokeAPIBaseURL = "https://pokeapi.co/api/v2"
	c.RateLimitRequests = 100
	c.RateLimitWindow = 15 * time.Minute
}

// Load builds a Config by applying defaults and then overlaying values
// from the environment.
func Load() *Config {
	cfg := &Config{}
	cfg.loadDefaults()

	cfg.Addr = env("ADDR", cfg.Addr)
	cfg.DatabaseDSN = env("DATABASE_URL", cfg.DatabaseDSN)
	cfg.TokenSecret = env("TOKEN_SECRET", cfg.TokenSecret)
	cfg.TokenTTL = envDuration("TOKEN_TTL", cfg.TokenTTL)
	cfg.PokeAPIBaseURL = env("POKEAPI_URL", cfg.PokeAPIBaseURL)
	cfg.RateLimitRequests = envInt("RATE_LIMIT", cfg.RateLimitRequests)
	cfg.RateLimitWindow = envDuration("RATE_WINDOW", cfg.RateLimitWindow)

	return cfg
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
