package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	Session   SessionConfig
	Mail      MailConfig
	RateLimit RateLimitConfig
	Locale    string `env:"LOCALE" envDefault:"en-US"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
}

type ServerConfig struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	Host            string        `env:"HOST" envDefault:"0.0.0.0"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

type AuthConfig struct {
	APIKeys []string `env:"API_KEYS" envSeparator:"," envDefault:"apitest"` // Valid API keys for order submission
}

type SessionConfig struct {
	TTL time.Duration `env:"SESSION_TTL" envDefault:"30m"`
}

type MailConfig struct {
	// Handlers are tried in order; "none" disables the mail handoff.
	Handlers     []string `env:"MAIL_HANDLERS" envSeparator:"," envDefault:"mailto"`
	SMTPAddr     string   `env:"SMTP_ADDR"`
	SMTPFrom     string   `env:"SMTP_FROM"`
	SMTPUsername string   `env:"SMTP_USERNAME"`
	SMTPPassword string   `env:"SMTP_PASSWORD"`
	SMTPTo       []string `env:"SMTP_TO" envSeparator:","`
}

type RateLimitConfig struct {
	RPS   int `env:"RATE_LIMIT_RPS" envDefault:"5"`
	Burst int `env:"RATE_LIMIT_BURST" envDefault:"10"`
}

// Load reads an optional .env file, then configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	opts := env.Options{
		FuncMap: map[reflect.Type]env.ParserFunc{
			reflect.TypeOf(time.Duration(0)): parseDuration,
		},
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// parseDuration accepts a Go duration ("15s", "30m") or a bare number of seconds ("15").
func parseDuration(v string) (interface{}, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return nil, fmt.Errorf("invalid duration %q", v)
	}
	return d, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if len(c.Auth.APIKeys) == 0 {
		return fmt.Errorf("at least one API key must be configured")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	for _, h := range c.Mail.Handlers {
		switch strings.TrimSpace(h) {
		case "mailto", "none":
		case "smtp":
			if c.Mail.SMTPAddr == "" || c.Mail.SMTPFrom == "" {
				return fmt.Errorf("smtp mail handler requires SMTP_ADDR and SMTP_FROM")
			}
		default:
			return fmt.Errorf("unknown mail handler: %s (must be mailto, smtp or none)", h)
		}
	}

	return nil
}
