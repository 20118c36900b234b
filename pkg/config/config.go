package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrNoJWTSecret is returned when JWT_SECRET is not configured.
var ErrNoJWTSecret = errors.New("config: JWT_SECRET is not set")

// Config holds the settings read from the environment
type Config struct {
	Port         string
	GinMode      string
	DatabaseURL  string
	DataPath     string
	JWTSecret    string
	TokenTTL     time.Duration
	BossName     string
	BossEmail    string
	BossPassword string
}

// Load reads .env (from the working directory or its parents) and then the
// process environment.
func Load() (*Config, error) {
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:         withDefault(getenv("PORT"), "8000"),
		GinMode:      getenv("GIN_MODE"),
		DatabaseURL:  getenv("DATABASE_URL"),
		DataPath:     withDefault(getenv("DATA_PATH"), "roster.db"),
		JWTSecret:    getenv("JWT_SECRET"),
		BossName:     withDefault(getenv("BOSS_NAME"), "Boss"),
		BossEmail:    withDefault(getenv("BOSS_EMAIL"), "boss@example.com"),
		BossPassword: withDefault(getenv("BOSS_PASSWORD"), "bosspass"),
	}

	if cfg.JWTSecret == "" {
		return nil, ErrNoJWTSecret
	}

	ttl, err := parseTTL(withDefault(getenv("JWT_EXPIRES_IN"), "60m"))
	if err != nil {
		return nil, fmt.Errorf("config: JWT_EXPIRES_IN: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("config: JWT_EXPIRES_IN must be positive, got %s", ttl)
	}
	cfg.TokenTTL = ttl

	return cfg, nil
}

// parseTTL accepts Go durations ("90m", "12h") and whole days ("7d").
func parseTTL(v string) (time.Duration, error) {
	if days, ok := strings.CutSuffix(v, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid day count %q", v)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(v)
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
