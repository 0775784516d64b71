// Package config loads focustrack settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Storage selects the session log and credential store backend.
type Storage string

const (
	StorageFile   Storage = "file"
	StorageSQLite Storage = "sqlite"
)

// Config holds all runtime settings.
type Config struct {
	// HomeDir holds the user file, per-user logs and report snapshots.
	HomeDir string
	Storage Storage
	// DBPath is used when Storage is StorageSQLite.
	DBPath string
	// User is the default identity for non-interactive commands.
	User string
	// TimeZone is an IANA zone name; empty means the process local zone.
	TimeZone string
	// Tick is how often countdowns report the remaining time.
	Tick time.Duration

	Notify       bool
	LogUseCases  bool
	OtelEnabled  bool
	OtelEndpoint string
	OtelInsecure bool
}

// DefaultConfig returns the settings used when no environment overrides are
// present. homeDir is the user's home directory.
func DefaultConfig(homeDir string) Config {
	base := filepath.Join(homeDir, ".focustrack")
	return Config{
		HomeDir: base,
		Storage: StorageFile,
		DBPath:  filepath.Join(base, "focustrack.db"),
		Tick:    time.Minute,
		Notify:  true,
	}
}

// LoadConfig reads FOCUSTRACK_* variables, falling back to defaults for
// anything unset or unparseable.
func LoadConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	return loadFrom(os.Getenv, home)
}

func loadFrom(getenv func(string) string, home string) (Config, error) {
	cfg := DefaultConfig(home)

	if v := getenv("FOCUSTRACK_HOME"); v != "" {
		cfg.HomeDir = v
		cfg.DBPath = filepath.Join(v, "focustrack.db")
	}
	if v := getenv("FOCUSTRACK_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := getenv("FOCUSTRACK_STORAGE"); v != "" {
		switch Storage(v) {
		case StorageFile, StorageSQLite:
			cfg.Storage = Storage(v)
		default:
			return Config{}, fmt.Errorf("FOCUSTRACK_STORAGE: unknown backend %q (want file or sqlite)", v)
		}
	}
	cfg.User = getenv("FOCUSTRACK_USER")
	cfg.TimeZone = getenv("FOCUSTRACK_TZ")
	if v := getenv("FOCUSTRACK_TICK"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Tick = d
		}
	}
	if v := getenv("FOCUSTRACK_NOTIFY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Notify = b
		}
	}
	if v := getenv("FOCUSTRACK_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := getenv("FOCUSTRACK_OTEL_ENABLED"); v != "" {
		cfg.OtelEnabled, _ = strconv.ParseBool(v)
	}
	cfg.OtelEndpoint = getenv("FOCUSTRACK_OTEL_ENDPOINT")
	if v := getenv("FOCUSTRACK_OTEL_INSECURE"); v != "" {
		cfg.OtelInsecure, _ = strconv.ParseBool(v)
	}

	return cfg, nil
}

// Location resolves TimeZone, defaulting to time.Local.
func (c Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("loading time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}
