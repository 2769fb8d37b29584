package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	t.Run("DefaultsValid", func(t *testing.T) {
		assert.NoError(t, defaults().Validate())
	})

	testCases := []struct {
		name    string
		mutate  func(*Config)
		errText string
	}{
		{
			name:    "IntervalTooSmall",
			mutate:  func(c *Config) { c.Monitor.CheckIntervalMs = 5 },
			errText: "check interval too small",
		},
		{
			name:    "NegativeMaxTracked",
			mutate:  func(c *Config) { c.Dedup.MaxTracked = -1 },
			errText: "max_tracked",
		},
		{
			name:    "NegativeLaunchRate",
			mutate:  func(c *Config) { c.Launcher.LaunchesPerMinute = -1 },
			errText: "launches_per_minute",
		},
		{
			name:    "BadLogLevel",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			errText: "invalid log level",
		},
		{
			name:    "BadLogOutput",
			mutate:  func(c *Config) { c.Logging.Output = "file" },
			errText: "invalid log output mode",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaults()
			tc.mutate(cfg)
			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tc.errText)
		})
	}
}

func TestDebugDirFor(t *testing.T) {
	t.Run("DefaultsToSiblingDirectory", func(t *testing.T) {
		cfg := defaults()
		dir := cfg.DebugDirFor(filepath.Join("Logs", "unity_errors.json"))
		assert.Equal(t, filepath.Join("Logs", "cursor_debug"), dir)
	})

	t.Run("ExplicitDirWins", func(t *testing.T) {
		cfg := defaults()
		cfg.Monitor.DebugDir = "/var/tmp/debug"
		assert.Equal(t, "/var/tmp/debug", cfg.DebugDirFor("Logs/unity_errors.json"))
	})
}
