package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadFrom(envMap(nil), "/home/alice")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/home/alice", ".focustrack"), cfg.HomeDir)
	assert.Equal(t, StorageFile, cfg.Storage)
	assert.Equal(t, filepath.Join("/home/alice", ".focustrack", "focustrack.db"), cfg.DBPath)
	assert.Equal(t, time.Minute, cfg.Tick)
	assert.True(t, cfg.Notify)
	assert.False(t, cfg.LogUseCases)
	assert.False(t, cfg.OtelEnabled)
}

func TestLoadConfig_Overrides(t *testing.T) {
	cfg, err := loadFrom(envMap(map[string]string{
		"FOCUSTRACK_HOME":          "/data/ft",
		"FOCUSTRACK_STORAGE":       "sqlite",
		"FOCUSTRACK_USER":          "bob",
		"FOCUSTRACK_TZ":            "Europe/Rome",
		"FOCUSTRACK_TICK":          "10s",
		"FOCUSTRACK_NOTIFY":        "false",
		"FOCUSTRACK_LOG_USE_CASES": "true",
		"FOCUSTRACK_OTEL_ENABLED":  "1",
		"FOCUSTRACK_OTEL_ENDPOINT": "localhost:4317",
		"FOCUSTRACK_OTEL_INSECURE": "true",
	}), "/home/alice")
	require.NoError(t, err)

	assert.Equal(t, "/data/ft", cfg.HomeDir)
	assert.Equal(t, filepath.Join("/data/ft", "focustrack.db"), cfg.DBPath)
	assert.Equal(t, StorageSQLite, cfg.Storage)
	assert.Equal(t, "bob", cfg.User)
	assert.Equal(t, "Europe/Rome", cfg.TimeZone)
	assert.Equal(t, 10*time.Second, cfg.Tick)
	assert.False(t, cfg.Notify)
	assert.True(t, cfg.LogUseCases)
	assert.True(t, cfg.OtelEnabled)
	assert.Equal(t, "localhost:4317", cfg.OtelEndpoint)
	assert.True(t, cfg.OtelInsecure)
}

func TestLoadConfig_ExplicitDBPathWins(t *testing.T) {
	cfg, err := loadFrom(envMap(map[string]string{
		"FOCUSTRACK_HOME": "/data/ft",
		"FOCUSTRACK_DB":   "/tmp/other.db",
	}), "/home/alice")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.DBPath)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	_, err := loadFrom(envMap(map[string]string{"FOCUSTRACK_STORAGE": "postgres"}), "/home/alice")
	assert.Error(t, err)

	cfg, err := loadFrom(envMap(map[string]string{
		"FOCUSTRACK_TICK":   "-5s",
		"FOCUSTRACK_NOTIFY": "maybe",
	}), "/home/alice")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.Tick, "non-positive tick falls back")
	assert.True(t, cfg.Notify, "unparseable bool keeps the default")
}

func TestConfig_Location(t *testing.T) {
	loc, err := Config{}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = Config{TimeZone: "UTC"}.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	_, err = Config{TimeZone: "Mars/Olympus"}.Location()
	assert.Error(t, err)
}
