// Package config loads runtime settings from the environment.
//
// A .env file in the working directory is loaded first when present. Values
// already set in the process environment win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Env         string // "local" or "production"
	Port        string
	DatabaseURL string // postgres://… or a SQLite path

	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	CORSAllowedOrigins []string
}

// Load reads .env (if any) and the environment, applies defaults and
// validates the result.
func Load() (Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := Config{
		Env:         getEnv("ENV", "local"),
		Port:        getEnv("PORT", "8305"),
		DatabaseURL: getEnv("DATABASE_URL", "data/bookie.db"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS",
			"http://localhost:3000,http://localhost:8305")),
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("config: TOKEN_TTL: %w", err)
	}
	cfg.TokenTTL = ttl

	cost, err := strconv.Atoi(getEnv("BCRYPT_COST", "12"))
	if err != nil {
		return Config{}, fmt.Errorf("config: BCRYPT_COST: %w", err)
	}
	cfg.BcryptCost = cost

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.Env != "local" && c.Env != "production" {
		errs = append(errs, fmt.Errorf("config: ENV must be local or production, got %q", c.Env))
	}
	if len(c.JWTSecret) < 16 {
		errs = append(errs, errors.New("config: JWT_SECRET must be set and at least 16 characters"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("config: TOKEN_TTL must be positive"))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("config: BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Errorf("config: PORT %q is not a number", c.Port))
	}
	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string { return ":" + c.Port }

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
