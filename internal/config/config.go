// Package config loads tablekit configuration. Precedence, highest to
// lowest: CLI flags > environment variables > config file > defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config file names looked up in the working directory.
const (
	ConfigFileName    = "tablekit.yaml"
	ConfigFileNameAlt = "tablekit.yml"
)

// envPrefix namespaces tablekit's environment variables, e.g.
// TABLEKIT_ADDR, TABLEKIT_PAGE_SIZE.
const envPrefix = "TABLEKIT_"

// Config holds the runtime configuration for the server and CLI.
type Config struct {
	// Addr is the listen address of the web UI.
	Addr string `koanf:"addr"`

	// Database is the SQLite path of the demo dataset. ":memory:" works.
	Database string `koanf:"database"`

	// SessionSecret signs the session cookie that remembers each
	// visitor's last committed view.
	SessionSecret string `koanf:"session_secret"`

	// PageSize is the number of rows per page.
	PageSize int `koanf:"page_size"`

	// Prefix namespaces the table's query keys. Empty uses the canonical
	// unprefixed keys.
	Prefix string `koanf:"prefix"`

	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
}

// Load builds the configuration from defaults, an optional YAML file,
// TABLEKIT_* environment variables, and the given flag set. cfgFile may be
// empty, in which case tablekit.yaml / tablekit.yml in the working
// directory are tried; a missing file is not an error.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"addr":           ":8321",
		"database":       "tablekit.db",
		"session_secret": "tablekit-dev-secret",
		"page_size":      10,
		"prefix":         "",
		"verbose":        false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if path := findConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	} else if cfgFile != "" {
		return nil, fmt.Errorf("config file not found: %s", cfgFile)
	}

	// 3. Environment: TABLEKIT_PAGE_SIZE -> page_size
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	// 4. Flags override everything. Flag names use dashes, koanf keys use
	// underscores.
	if flags != nil {
		p := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		})
		if err := k.Load(p, nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.PageSize < 1 {
		return nil, fmt.Errorf("page_size must be positive, got %d", cfg.PageSize)
	}
	return &cfg, nil
}

// findConfigFile resolves the config file to use.
// Priority: explicit path > tablekit.yaml > tablekit.yml.
func findConfigFile(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}
	if _, err := os.Stat(ConfigFileName); err == nil {
		return ConfigFileName
	}
	if _, err := os.Stat(ConfigFileNameAlt); err == nil {
		return ConfigFileNameAlt
	}
	return ""
}
