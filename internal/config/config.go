// Package config loads CLI configuration from defaults, an optional YAML
// file, OCCFILTER_ environment variables and explicitly set flags, in
// increasing order of precedence.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/roach88/occfilter/internal/download"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "OCCFILTER_"

// Defaults.
const (
	DefaultDatabase = "occfilter.db"
	DefaultMaxDepth = 64
	DefaultFormat   = "text"
	DefaultLogLevel = "info"
)

// Config holds all CLI configuration options.
type Config struct {
	// Database is the SQLite file used by the request commands.
	Database string `koanf:"database"`

	// MaxDepth bounds predicate nesting when decoding untrusted input.
	// Zero disables the limit.
	MaxDepth int `koanf:"max_depth"`

	// Format is the output format: text or json.
	Format string `koanf:"format"`

	Verbose  bool   `koanf:"verbose"`
	LogLevel string `koanf:"log_level"`

	// DownloadFormat is applied to requests that name no format.
	DownloadFormat string `koanf:"download_format"`
}

// Level returns the slog level. Verbose forces debug.
func (c *Config) Level() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Validate reports the first invalid option.
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be non-negative, got %d", c.MaxDepth)
	}
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("format must be text or json, got %q", c.Format)
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if _, err := download.ParseFormat(c.DownloadFormat); err != nil {
		return fmt.Errorf("download_format: %w", err)
	}
	return nil
}

// findConfigFile finds the config file to use.
// Priority: explicit path > occfilter.yaml > occfilter.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"occfilter.yaml", "occfilter.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load builds the configuration. cfgFile may be empty, in which case
// occfilter.yaml in the working directory is used if present. flags may be
// nil. The second result is the config file actually read, if any.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, string, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"database":        DefaultDatabase,
		"max_depth":       DefaultMaxDepth,
		"format":          DefaultFormat,
		"verbose":         false,
		"log_level":       DefaultLogLevel,
		"download_format": string(download.DefaultFormat),
	}, "."), nil); err != nil {
		return nil, "", fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, "", fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// OCCFILTER_MAX_DEPTH -> max_depth
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, "", fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			// --max-depth -> max_depth
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, "", fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, "", fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, used, nil
}
