// Package config centralises environment-based configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config captures runtime configuration values for the server.
type Config struct {
	Port          string
	DatabasePath  string
	SessionSecret string
	BcryptCost    int
	CookieSecure  bool
	Debug         bool
}

// Load reads a local .env file if present, then environment variables,
// applying defaults suitable for local development. SESSION_SECRET is
// required and must be long enough to sign cookies safely.
func Load() (Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		DatabasePath:  getEnv("DATABASE_PATH", "workout.db"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		BcryptCost:    12,
		// Off by default so login works over plain HTTP in local
		// development; set COOKIE_SECURE=true behind TLS.
		CookieSecure:  os.Getenv("COOKIE_SECURE") == "true",
		Debug:         os.Getenv("DEBUG") == "true",
	}

	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET environment variable is required")
	}
	if len(cfg.SessionSecret) < 32 {
		return Config{}, errors.New("SESSION_SECRET must be at least 32 characters")
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		if parsed < 4 || parsed > 14 {
			return Config{}, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", parsed)
		}
		cfg.BcryptCost = parsed
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
