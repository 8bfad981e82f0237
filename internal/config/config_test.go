package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SYNCPAD_DATA_DIR", dir)

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.False(t, cfg.Offline)
	assert.Equal(t, DefaultSyncLatency, cfg.SyncLatency)
	assert.Equal(t, DefaultPollInterval, cfg.PollInterval)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dir, "syncpad.log"), cfg.LogFile)
	assert.Equal(t, filepath.Join(dir, DBFileName), cfg.DBPath())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SYNCPAD_DATA_DIR", t.TempDir())
	t.Setenv("SYNCPAD_OFFLINE", "true")
	t.Setenv("SYNCPAD_SYNC_LATENCY", "750ms")
	t.Setenv("SYNCPAD_LOG_LEVEL", "debug")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.True(t, cfg.Offline)
	assert.Equal(t, 750*time.Millisecond, cfg.SyncLatency)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadReadsConfigFileFromDataDir(t *testing.T) {
	dir := t.TempDir()
	yaml := "offline: true\npoll_interval: 5s\nlog_level: warn\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	t.Setenv("SYNCPAD_DATA_DIR", dir)

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.True(t, cfg.Offline)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadClampsPollInterval(t *testing.T) {
	t.Setenv("SYNCPAD_DATA_DIR", t.TempDir())
	t.Setenv("SYNCPAD_POLL_INTERVAL", "1ms")

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, minPollInterval, cfg.PollInterval)
}

func TestLoadRejectsMalformedConfigFile(t *testing.T) {
	dir := t.TempDir()
	// An unterminated flow sequence; a bare junk string would parse as a
	// scalar document.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("offline: [true\n"), 0o644))

	t.Setenv("SYNCPAD_DATA_DIR", dir)

	_, err := Load(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestDefaultDataDirUnderHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(DefaultDataDir(), home))
	assert.True(t, strings.HasSuffix(DefaultDataDir(), ".syncpad"))
}
