package config

import (
	"errors"
	"testing"
	"time"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{"JWT_SECRET": "s3cret"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.DataPath != "roster.db" {
		t.Errorf("expected default data path, got %s", cfg.DataPath)
	}
	if cfg.TokenTTL != 60*time.Minute {
		t.Errorf("expected 60m token ttl, got %s", cfg.TokenTTL)
	}
	if cfg.BossEmail != "boss@example.com" {
		t.Errorf("unexpected boss email %s", cfg.BossEmail)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"JWT_SECRET":     "s3cret",
		"PORT":           "4000",
		"DATABASE_URL":   "postgres://localhost/roster",
		"JWT_EXPIRES_IN": "2h",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "4000" || cfg.DatabaseURL != "postgres://localhost/roster" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Errorf("expected 2h, got %s", cfg.TokenTTL)
	}
}

func TestFromEnv_MissingSecret(t *testing.T) {
	if _, err := FromEnv(envOf(nil)); !errors.Is(err, ErrNoJWTSecret) {
		t.Errorf("expected ErrNoJWTSecret, got %v", err)
	}
}

func TestFromEnv_TTLFormats(t *testing.T) {
	for v, want := range map[string]time.Duration{
		"7d":    7 * 24 * time.Hour,
		"1d":    24 * time.Hour,
		"90m":   90 * time.Minute,
		"1h30m": 90 * time.Minute,
	} {
		cfg, err := FromEnv(envOf(map[string]string{"JWT_SECRET": "x", "JWT_EXPIRES_IN": v}))
		if err != nil {
			t.Errorf("JWT_EXPIRES_IN=%q: %v", v, err)
			continue
		}
		if cfg.TokenTTL != want {
			t.Errorf("JWT_EXPIRES_IN=%q: expected %s, got %s", v, want, cfg.TokenTTL)
		}
	}
}

func TestFromEnv_BadTTL(t *testing.T) {
	for _, v := range []string{"soon", "-5m", "0d", "-2d", "xd", "d"} {
		_, err := FromEnv(envOf(map[string]string{"JWT_SECRET": "x", "JWT_EXPIRES_IN": v}))
		if err == nil {
			t.Errorf("expected error for JWT_EXPIRES_IN=%q", v)
		}
	}
}
