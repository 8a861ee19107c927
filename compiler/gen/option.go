package gen

import (
	"errors"
	"log/slog"
	"runtime"
	"strings"

	"github.com/syssam/stormgen/dialect"
	"github.com/syssam/stormgen/dialect/sqlschema"
)

// Config holds the settings shared by every generation request.
type Config struct {
	// Backend is used for requests that do not name one.
	Backend string
	// TemplatePath overrides the embedded class template. The file is read
	// on every request so edits are picked up by long-running callers.
	TemplatePath string
	// Template overrides both the embedded template and TemplatePath.
	Template *Template
	// SQLTable enables the sql_table fragment. When disabled the
	// placeholder renders as an empty literal.
	SQLTable bool
	TypeMap  *sqlschema.TypeMap
	Logger   *slog.Logger
	// Workers bounds the number of requests GenerateAll runs at once.
	Workers int
}

// Option configures code generation.
type Option func(*Config) error

// WithBackend sets the default database backend.
// Supported backends: "sqlite", "mysql", "postgres".
func WithBackend(name string) Option {
	return func(c *Config) error {
		b, err := dialect.Normalize(name)
		if err != nil {
			return &ConfigError{Option: "Backend", Value: name, Message: "unsupported backend", Cause: err}
		}
		c.Backend = b
		return nil
	}
}

// WithTemplatePath reads the class template from path.
func WithTemplatePath(path string) Option {
	return func(c *Config) error {
		if strings.TrimSpace(path) == "" {
			return NewConfigError("TemplatePath", nil, "template path cannot be empty")
		}
		c.TemplatePath = path
		return nil
	}
}

// WithTemplate sets the template text directly.
func WithTemplate(text string) Option {
	return func(c *Config) error {
		t, err := ParseTemplate("inline", []byte(text))
		if err != nil {
			return err
		}
		c.Template = t
		return nil
	}
}

// WithSQLTable toggles the sql_table fragment.
func WithSQLTable(enabled bool) Option {
	return func(c *Config) error {
		c.SQLTable = enabled
		return nil
	}
}

// WithTypeMap replaces the default backend type map.
func WithTypeMap(tm *sqlschema.TypeMap) Option {
	return func(c *Config) error {
		if tm == nil {
			return NewConfigError("TypeMap", nil, "type map cannot be nil")
		}
		c.TypeMap = tm
		return nil
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithWorkers sets the number of parallel workers used by GenerateAll.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with defaults and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	c.defaults()
	return c, nil
}

// defaults fills unset fields.
func (c *Config) defaults() {
	if c.Backend == "" {
		c.Backend = dialect.Default
	}
	if c.TypeMap == nil {
		c.TypeMap = sqlschema.NewTypeMap()
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
