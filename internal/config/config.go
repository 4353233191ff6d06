// Package config loads Tabula settings from defaults, a YAML file,
// TABULA_* environment variables and command-line flags.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/tabula/pkg/schema"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const envPrefix = "TABULA_"

// Output formats understood by the terminal surface.
const (
	FormatTable    = "table"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Config is the full application configuration.
type Config struct {
	Seed    string        `koanf:"seed"`
	Log     LogConfig     `koanf:"log"`
	Numbers NumbersConfig `koanf:"numbers"`
	HTTP    HTTPConfig    `koanf:"http"`
	Metrics MetricsConfig `koanf:"metrics"`
	Output  OutputConfig  `koanf:"output"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

type LogConfig struct {
	Level string `koanf:"level"`
	JSON  bool   `koanf:"json"`
}

type NumbersConfig struct {
	// NaN is "reject" or "passthrough".
	NaN string `koanf:"nan"`
}

type HTTPConfig struct {
	Port int `koanf:"port"`
}

type MetricsConfig struct {
	Enabled bool `koanf:"enabled"`
}

type OutputConfig struct {
	Format string `koanf:"format"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"seed":      "seed",
	"log-level": "log.level",
	"log-json":  "log.json",
	"nan":       "numbers.nan",
	"port":      "http.port",
	"metrics":   "metrics.enabled",
	"format":    "output.format",
}

func defaults() map[string]any {
	return map[string]any{
		"seed":            "",
		"log.level":       "off",
		"log.json":        false,
		"numbers.nan":     "reject",
		"http.port":       8080,
		"metrics.enabled": true,
		"output.format":   FormatTable,
	}
}

// findConfigFile picks the explicit path, or tabula.yaml / tabula.yml in the working directory.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"tabula.yaml", "tabula.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load builds the configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// TABULA_LOG_LEVEL -> log.level
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be expressed by types alone.
func (c *Config) Validate() error {
	if _, err := c.NaNPolicy(); err != nil {
		return err
	}
	switch c.Output.Format {
	case FormatTable, FormatMarkdown, FormatJSON:
	default:
		return fmt.Errorf("unsupported output format: %s", c.Output.Format)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid http port: %d", c.HTTP.Port)
	}
	return nil
}

// NaNPolicy returns the configured handling of unparseable numeric input.
func (c *Config) NaNPolicy() (schema.NaNPolicy, error) {
	return schema.ParseNaNPolicy(c.Numbers.NaN)
}
