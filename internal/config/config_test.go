package config_test

import (
	"strings"
	"testing"

	"github.com/msomdec/workout-tracker/internal/config"
)

const validSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", validSecret)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.DatabasePath != "workout.db" {
		t.Fatalf("expected default database path workout.db, got %s", cfg.DatabasePath)
	}
	if cfg.BcryptCost != 12 {
		t.Fatalf("expected default bcrypt cost 12, got %d", cfg.BcryptCost)
	}
	if cfg.CookieSecure {
		t.Fatal("expected secure cookies off by default for plain-HTTP development")
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for missing SESSION_SECRET")
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "too-short")

	_, err := config.Load()
	if err == nil || !strings.Contains(err.Error(), "32 characters") {
		t.Fatalf("expected short-secret error, got %v", err)
	}
}

func TestLoad_BcryptCostBounds(t *testing.T) {
	t.Setenv("SESSION_SECRET", validSecret)

	t.Setenv("BCRYPT_COST", "20")
	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for out-of-range BCRYPT_COST")
	}

	t.Setenv("BCRYPT_COST", "not-a-number")
	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for non-numeric BCRYPT_COST")
	}

	t.Setenv("BCRYPT_COST", "10")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("expected bcrypt cost 10, got %d", cfg.BcryptCost)
	}
}

func TestLoad_CookieSecureOptIn(t *testing.T) {
	t.Setenv("SESSION_SECRET", validSecret)
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.CookieSecure {
		t.Fatal("expected COOKIE_SECURE=true to enable secure cookies")
	}
}
