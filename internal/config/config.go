// Package config resolves syncpad settings from defaults, an optional
// config.yaml in the data directory, SYNCPAD_* environment variables and
// command-line flags, weakest first.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DBFileName is the task database filename inside the data directory.
const DBFileName = "tasks.db"

const (
	// DefaultSyncLatency is the fixed delay a reconciliation pass waits
	// to simulate the remote round trip.
	DefaultSyncLatency = 2 * time.Second

	// DefaultPollInterval is how often the connectivity probe runs.
	DefaultPollInterval = 2 * time.Second

	// minPollInterval guards against busy-polling from a bad value.
	minPollInterval = 100 * time.Millisecond
)

// Config is the resolved runtime configuration.
type Config struct {
	DataDir      string        `mapstructure:"data_dir"`
	Offline      bool          `mapstructure:"offline"`
	SyncLatency  time.Duration `mapstructure:"sync_latency"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	LogLevel     string        `mapstructure:"log_level"`
	LogFile      string        `mapstructure:"log_file"`
}

// Load resolves the configuration from v. The caller binds flags before
// calling; Load supplies defaults, reads config.yaml from the data
// directory when present and wires the SYNCPAD_* environment.
func Load(v *viper.Viper) (Config, error) {
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("offline", false)
	v.SetDefault("sync_latency", DefaultSyncLatency)
	v.SetDefault("poll_interval", DefaultPollInterval)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")

	v.SetEnvPrefix("syncpad")
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(v.GetString("data_dir"))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir()
	}
	if cfg.PollInterval < minPollInterval {
		cfg.PollInterval = minPollInterval
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, "syncpad.log")
	}
	return cfg, nil
}

// DBPath returns the task database location under the data directory.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, DBFileName)
}

// DefaultDataDir is ~/.syncpad, or ./.syncpad when the home directory
// cannot be resolved.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".syncpad"
	}
	return filepath.Join(home, ".syncpad")
}
