// Package config loads the stormgen CLI configuration from defaults, a
// stormgen.yaml file, STORMGEN_* environment variables and command-line flags.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/syssam/stormgen/dialect"
)

// Config holds all CLI configuration options.
type Config struct {
	Backend   string `koanf:"backend"`
	Template  string `koanf:"template"`
	Package   bool   `koanf:"package"`
	SQLTable  bool   `koanf:"sql_table"`
	Workers   int    `koanf:"workers"`
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
	Verbose   bool   `koanf:"verbose"`

	// File is the configuration file that was loaded, if any.
	File string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultBackend   = dialect.Default
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
	EnvPrefix        = "STORMGEN_"
)

// ConfigFiles are the file names searched in the working directory.
var ConfigFiles = []string{"stormgen.yaml", "stormgen.yml"}

// Validate checks the configuration and normalizes the backend name.
func (c *Config) Validate() error {
	b, err := dialect.Normalize(c.Backend)
	if err != nil {
		return fmt.Errorf("invalid backend: %w", err)
	}
	c.Backend = b
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q (valid: text, json)", c.LogFormat)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// ParseLevel parses a log level name.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q (valid: debug, info, warn, error)", s)
	}
	return l, nil
}

type (
	configKey struct{}
	loggerKey struct{}
)

// WithConfig returns a copy of ctx carrying cfg.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from the command context.
func FromContext(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return &Config{
		Backend:   DefaultBackend,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
