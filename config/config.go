// Package config loads the style, database and logging settings of sqlstyle
// from a YAML file and the environment.
package config

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap/zapcore"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/syssam/sqlstyle/dialect/sql/style"
)

// DefaultEnvPrefix is the prefix of environment variables read by Load.
const DefaultEnvPrefix = "SQLSTYLE"

// Config is the root configuration.
type Config struct {
	Style    style.Config   `yaml:"style" koanf:"style"`
	Database DatabaseConfig `yaml:"database" koanf:"database"`
	Log      LogConfig      `yaml:"log" koanf:"log"`
}

// DatabaseConfig holds the connection settings used by the roundtrip command.
type DatabaseConfig struct {
	// DSN is the data source name passed to sql.Open.
	DSN string `yaml:"dsn" koanf:"dsn"`
	// SlowThreshold is the duration above which a statement is logged as slow.
	SlowThreshold time.Duration `yaml:"slow_threshold" koanf:"slow_threshold"`
}

// LogConfig holds the logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `yaml:"level" koanf:"level"`
	// Development switches to the console encoder.
	Development bool `yaml:"development" koanf:"development"`
}

// Default returns the configuration used when nothing is loaded.
func Default() Config {
	return Config{
		Style: style.DefaultConfig(),
		Database: DatabaseConfig{
			SlowThreshold: 100 * time.Millisecond,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	if err := c.Style.Validate(); err != nil {
		return err
	}
	if c.Database.SlowThreshold < 0 {
		return fmt.Errorf("config: slow threshold must not be negative, got %s", c.Database.SlowThreshold)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log level: %w", err)
	}
	return nil
}

// Option configures Load.
type Option func(*options)

type options struct {
	envPrefix string
	noEnv     bool
}

// WithEnvPrefix sets the environment variable prefix. Default is SQLSTYLE.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithoutEnv disables reading the environment.
func WithoutEnv() Option {
	return func(o *options) {
		o.noEnv = true
	}
}

// Load returns the default configuration overlaid with the YAML file at path
// and then with the environment. The file is optional when path is empty.
//
// Environment variables are named after the keys with the section and the
// key joined by a double underscore, for example
// SQLSTYLE_STYLE__MAX_LIST_SIZE=500 or SQLSTYLE_LOG__LEVEL=debug.
func Load(path string, opts ...Option) (Config, error) {
	o := &options{envPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		opt(o)
	}

	k := koanf.New(".")
	if path != "" {
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".yaml", ".yml":
		default:
			return Config{}, fmt.Errorf("config: unsupported file type %q", ext)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	// The environment is loaded last so that it wins over the file.
	if !o.noEnv {
		prefix := o.envPrefix + "_"
		provider := env.Provider(prefix, ".", func(s string) string {
			return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, prefix)), "__", ".")
		})
		if err := k.Load(provider, nil); err != nil {
			return Config{}, fmt.Errorf("config: load environment: %w", err)
		}
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Dump writes cfg as YAML.
func Dump(w io.Writer, cfg Config) error {
	enc := yamlv3.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("config: dump: %w", err)
	}
	return enc.Close()
}
