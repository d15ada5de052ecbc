package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const devSessionSecret = "development-only-session-secret!"

// Provider exposes configuration to the rest of the application.
type Provider interface {
	GetAddr() string
	GetSessionSecret() string
	GetSubmitDelay() time.Duration
	GetSubmitFail() bool
	GetRateLimit() int
	IsDevelopment() bool
}

// Config holds all configuration for the application.
type Config struct {
	Addr          string
	Env           string
	SessionSecret string
	SubmitDelay   time.Duration
	SubmitFail    bool
	RateLimit     int
}

// ErrMissingSessionSecret is returned outside development when SESSION_SECRET is unset.
var ErrMissingSessionSecret = errors.New("SESSION_SECRET must be set outside development")

// New loads configuration from a .env file (if any) and environment variables.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Addr:          getenv("APP_ADDR"),
		Env:           getenv("APP_ENV"),
		SessionSecret: getenv("SESSION_SECRET"),
		SubmitDelay:   1500 * time.Millisecond,
		RateLimit:     10,
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}

	if raw := getenv("SUBMIT_DELAY"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("invalid SUBMIT_DELAY %q", raw)
		}
		cfg.SubmitDelay = d
	}
	if raw := getenv("SUBMIT_FAIL"); raw != "" {
		fail, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SUBMIT_FAIL %q: %w", raw, err)
		}
		cfg.SubmitFail = fail
	}
	if raw := getenv("RATE_LIMIT"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid RATE_LIMIT %q", raw)
		}
		cfg.RateLimit = n
	}

	if cfg.SessionSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, ErrMissingSessionSecret
		}
		cfg.SessionSecret = devSessionSecret
	}
	return cfg, nil
}

func (c *Config) GetAddr() string { return c.Addr }
func (c *Config) GetSessionSecret() string { return c.SessionSecret }
func (c *Config) GetSubmitDelay() time.Duration { return c.SubmitDelay }
func (c *Config) GetSubmitFail() bool { return c.SubmitFail }
func (c *Config) GetRateLimit() int { return c.RateLimit }
func (c *Config) IsDevelopment() bool { return c.Env == "development" }
