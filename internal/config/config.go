// Package config reads runtime settings from SUSTAINAMINE_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// Prefix is prepended to every environment variable name.
const Prefix = "SUSTAINAMINE"

// WildcardOrigin allows any CORS origin.
const WildcardOrigin = "*"

// ErrWildcardCredentials is returned when credentials are enabled for a
// wildcard origin.
var ErrWildcardCredentials = errors.New("cannot enable CORS credentials with wildcard origin (*)")

// Config holds settings shared by the CLI and the HTTP server.
type Config struct {
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"console" validate:"oneof=console json"`
	FactorsFile string `envconfig:"FACTORS_FILE"`

	ListenAddr      string        `envconfig:"LISTEN_ADDR" default:":8080" validate:"required,hostname_port"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s" validate:"gt=0"`

	CORSAllowedOrigins   []string `envconfig:"CORS_ALLOWED_ORIGINS"`
	CORSAllowCredentials bool     `envconfig:"CORS_ALLOW_CREDENTIALS"`
	CORSMaxAge           int      `envconfig:"CORS_MAX_AGE" default:"86400" validate:"gte=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the environment, normalizes the result and validates it.
// A wildcard CORS origin is accepted with a warning.
func Load(logger zerolog.Logger) (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	if cfg.HasWildcardOrigin() {
		logger.Warn().Msg("CORS wildcard origin (*) is insecure; use specific origins in production")
	}
	logger.Debug().
		Strs("allowed_origins", cfg.CORSAllowedOrigins).
		Int("max_age", cfg.CORSMaxAge).
		Str("listen_addr", cfg.ListenAddr).
		Msg("configuration loaded")
	return cfg, nil
}

// Normalize lower-cases enumerated settings and drops blank origins.
func (c *Config) Normalize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.FactorsFile = strings.TrimSpace(c.FactorsFile)

	origins := c.CORSAllowedOrigins[:0]
	for _, o := range c.CORSAllowedOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	c.CORSAllowedOrigins = origins
}

// Validate checks field constraints and the CORS credential rule.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid configuration: %s fails %q (value %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.HasWildcardOrigin() && c.CORSAllowCredentials {
		return ErrWildcardCredentials
	}
	return nil
}

// HasWildcardOrigin reports whether any allowed origin is "*".
func (c Config) HasWildcardOrigin() bool {
	for _, o := range c.CORSAllowedOrigins {
		if o == WildcardOrigin {
			return true
		}
	}
	return false
}
