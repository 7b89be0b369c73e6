// Package config resolves runtime settings from defaults, an optional YAML
// file, TODO_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/sandeepkv93/todo/internal/storage"
)

const EnvPrefix = "TODO"

const (
	KeyFile     = "file"
	KeyBackend  = "backend"
	KeyLogLevel = "log-level"
	KeyNoColor  = "no-color"
	KeyFormat   = "format"
)

type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

type Config struct {
	StorePath string
	Backend   Backend
	LogLevel  string
	NoColor   bool
	Format    Format
}

func Default() Config {
	return Config{
		Backend:  BackendJSON,
		LogLevel: "warn",
		Format:   FormatText,
	}
}

// NewViper returns a viper instance seeded with defaults and bound to the
// TODO_ environment.
func NewViper() *viper.Viper {
	d := Default()
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault(KeyFile, d.StorePath)
	v.SetDefault(KeyBackend, string(d.Backend))
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyNoColor, d.NoColor)
	v.SetDefault(KeyFormat, string(d.Format))
	return v
}

// ReadFile merges a YAML config file into v. An empty path falls back to
// DefaultFilePath, which may be absent.
func ReadFile(v *viper.Viper, path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultFilePath()
		if path == "" {
			return nil
		}
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// DefaultFilePath is $XDG_CONFIG_HOME/todo/config.yaml (or the platform
// equivalent); empty when no config directory is known.
func DefaultFilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "todo", "config.yaml")
}

func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		StorePath: strings.TrimSpace(v.GetString(KeyFile)),
		Backend:   Backend(strings.ToLower(strings.TrimSpace(v.GetString(KeyBackend)))),
		LogLevel:  strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		NoColor:   v.GetBool(KeyNoColor),
		Format:    Format(strings.ToLower(strings.TrimSpace(v.GetString(KeyFormat)))),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendJSON, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("config: unknown backend %q (want json, sqlite or memory)", c.Backend)
	}
	switch c.Format {
	case FormatText, FormatTable, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("config: unknown format %q (want text, table, json or yaml)", c.Format)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ResolveStorePath returns the configured path or the backend's default
// location in the home directory.
func (c Config) ResolveStorePath() (string, error) {
	if c.StorePath != "" {
		return c.StorePath, nil
	}
	switch c.Backend {
	case BackendSQLite:
		return storage.DefaultSQLitePath()
	case BackendMemory:
		return "", nil
	default:
		return storage.DefaultPath()
	}
}
