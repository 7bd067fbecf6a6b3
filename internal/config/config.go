// Package config locates the per-user data directory of git-travel and
// loads its optional config.toml.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/kilupskalvis/git-travel/internal/store"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

const (
	AppDir     = "git-travel"
	ConfigFile = "config.toml"

	// EnvDataDir overrides the data directory.
	EnvDataDir = "GIT_TRAVEL_DATA_DIR"

	// LegacyDir is where the plain-file logs lived, relative to the home directory.
	LegacyDir = ".data/git-travel-data"
)

// Config represents the git-travel configuration
type Config struct {
	StoreDriver string `toml:"store_driver"`
	LogLevel    string `toml:"log_level"`
	LogFormat   string `toml:"log_format"`
	TrackHead   bool   `toml:"track_head"` // Also move the tracked head on travel/move
	path        string // data directory
}

// Default returns the configuration used when no config file exists.
func Default(dataDir string) *Config {
	return &Config{
		StoreDriver: store.DriverBolt,
		LogLevel:    "warn",
		LogFormat:   "text",
		path:        dataDir,
	}
}

// DataDir returns the per-user data directory for the running OS.
func DataDir() (string, error) {
	return dataDirFor(runtime.GOOS, os.Getenv, homedir.Dir)
}

func dataDirFor(goos string, getenv func(string) string, home func() (string, error)) (string, error) {
	if dir := getenv(EnvDataDir); dir != "" {
		return dir, nil
	}
	if dir := getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, AppDir), nil
	}

	switch goos {
	case "windows":
		dir := getenv("LOCALAPPDATA")
		if dir == "" {
			return "", fmt.Errorf("LOCALAPPDATA is not set")
		}
		return filepath.Join(dir, AppDir), nil
	case "darwin", "linux", "freebsd", "openbsd", "netbsd":
		h, err := home()
		if err != nil {
			return "", fmt.Errorf("failed to find home directory: %w", err)
		}
		return filepath.Join(h, ".data", AppDir), nil
	default:
		return "", fmt.Errorf("cannot determine data directory for %s", goos)
	}
}

// DefaultLegacyDir returns the directory of the plain-file logs.
func DefaultLegacyDir() (string, error) {
	h, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}
	return filepath.Join(h, filepath.FromSlash(LegacyDir)), nil
}

// Load loads the configuration from dataDir, falling back to defaults for
// a missing file or missing keys.
func Load(dataDir string) (*Config, error) {
	cfg := Default(dataDir)

	data, err := os.ReadFile(filepath.Join(dataDir, ConfigFile))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	if err := os.MkdirAll(c.path, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(filepath.Join(c.path, ConfigFile), data, 0644)
}

// Validate checks that enumerated settings hold known values.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case store.DriverBolt, store.DriverSQLite:
	default:
		return fmt.Errorf("invalid store_driver %q (want %s or %s)", c.StoreDriver, store.DriverBolt, store.DriverSQLite)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q (want text or json)", c.LogFormat)
	}
	return nil
}

// DataPath returns the data directory
func (c *Config) DataPath() string {
	return c.path
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q (want debug, info, warn or error)", s)
	}
}

// NewLogger builds the diagnostic logger described by level and format.
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), nil
}
