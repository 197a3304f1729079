package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, int64(5242880), cfg.Check.MaxFileBytes)
	assert.Equal(t, 50000, cfg.Check.MaxPhysicalLines)
	assert.Equal(t, "Shift_JIS", cfg.Check.Encoding)
	assert.Equal(t, 4, cfg.Check.MaxConcurrent)
	assert.Equal(t, 30*time.Minute, cfg.Check.RunTTL)
	assert.True(t, cfg.Rate.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("CHECK_MAX_FILE_BYTES", "1048576")
	t.Setenv("CHECK_MAX_WAIT", "5s")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, int64(1048576), cfg.Check.MaxFileBytes)
	assert.Equal(t, 5*time.Second, cfg.Check.MaxWait)
	assert.False(t, cfg.Rate.Enabled)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		value string
	}{
		{"port out of range", "SERVER_PORT", "70000"},
		{"port not a number", "SERVER_PORT", "http"},
		{"negative file bytes", "CHECK_MAX_FILE_BYTES", "-1"},
		{"bad duration", "CHECK_MAX_WAIT", "soon"},
		{"bad bool", "RATE_LIMIT_ENABLED", "maybe"},
		{"unknown log level", "LOG_LEVEL", "loud"},
		{"unknown log format", "LOG_FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadProfileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
limits:
  max_physical_lines: 1000
encoding: EUC-JP
columns:
  store_code: 5
  amount: 6
flagged_store_code: X99
allowed_amounts: ["100"]
`), 0o644))

	cfg, err := LoadProfile(path)
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.MaxPhysicalLines)
	assert.Equal(t, "EUC-JP", cfg.Encoding)
	assert.Equal(t, 5, cfg.StoreCodeColumn)
	assert.Equal(t, 6, cfg.AmountColumn)
	assert.Equal(t, "X99", cfg.FlaggedStoreCode)
	assert.Equal(t, []string{"100"}, cfg.AllowedAmounts)

	// Untouched fields keep their defaults.
	assert.Equal(t, int64(5*1024*1024), cfg.MaxFileBytes)
	assert.Equal(t, 8, cfg.MandatoryDateColumn)
}

func TestLoadProfileZeroColumnIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("columns:\n  store_name: 0\n"), 0o644))

	cfg, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.StoreNameColumn, "explicit zero index should override")
}

func TestLoadProfileRejectsNegativeColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("columns:\n  amount: -3\n"), 0o644))

	_, err := LoadProfile(path)
	assert.Error(t, err)
}

func TestLoadProfileMissingFile(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
