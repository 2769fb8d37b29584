package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lconfig "github.com/lixenwraith/config"
)

type Config struct {
	Monitor  MonitorConfig  `toml:"monitor"`
	Dedup    DedupConfig    `toml:"dedup"`
	Launcher LauncherConfig `toml:"launcher"`
	Logging  LoggingConfig  `toml:"logging"`
}

type MonitorConfig struct {
	// SourceFile is the engine's JSON error log. The CLI positional
	// argument takes precedence over this value.
	SourceFile      string `toml:"source_file"`
	CheckIntervalMs int    `toml:"check_interval_ms"`
	// DebugDir receives the generated artifacts. Empty means a
	// cursor_debug directory next to the source file.
	DebugDir string `toml:"debug_dir"`
}

type DedupConfig struct {
	// MaxTracked bounds the in-memory identity set; oldest ids are
	// evicted first. 0 removes the bound.
	MaxTracked int `toml:"max_tracked"`
}

type LauncherConfig struct {
	Enabled bool `toml:"enabled"`
	// Command overrides OS-family dispatch, e.g. "code".
	Command           string `toml:"command"`
	LaunchesPerMinute int    `toml:"launches_per_minute"`
	Burst             int    `toml:"burst"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Output string `toml:"output"` // stdout, stderr, none
}

func defaults() *Config {
	return &Config{
		Monitor: MonitorConfig{
			CheckIntervalMs: 1000,
		},
		Dedup: DedupConfig{
			MaxTracked: 8192,
		},
		Launcher: LauncherConfig{
			Enabled:           true,
			LaunchesPerMinute: 10,
			Burst:             3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: "stderr",
		},
	}
}

// Load builds the configuration from env > file > defaults.
func Load() (*Config, error) {
	configPath := GetConfigPath()

	cfg, err := lconfig.NewBuilder().
		WithDefaults(defaults()).
		WithEnvPrefix("ERRLENS_").
		WithFile(configPath).
		WithEnvTransform(customEnvTransform).
		WithSources(
			lconfig.SourceEnv,
			lconfig.SourceFile,
			lconfig.SourceDefault,
		).
		Build()

	if err != nil {
		if !strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	finalConfig := &Config{}
	if err := cfg.Scan(finalConfig, ""); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}

	return finalConfig, finalConfig.Validate()
}

func customEnvTransform(path string) string {
	env := strings.ReplaceAll(path, ".", "_")
	env = strings.ToUpper(env)
	env = "ERRLENS_" + env
	return env
}

func GetConfigPath() string {
	if configFile := os.Getenv("ERRLENS_CONFIG_FILE"); configFile != "" {
		if filepath.IsAbs(configFile) {
			return configFile
		}
		if configDir := os.Getenv("ERRLENS_CONFIG_DIR"); configDir != "" {
			return filepath.Join(configDir, configFile)
		}
		return configFile
	}

	if configDir := os.Getenv("ERRLENS_CONFIG_DIR"); configDir != "" {
		return filepath.Join(configDir, "errlens.toml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "errlens.toml")
	}

	return "errlens.toml"
}

func (c *Config) Validate() error {
	if c.Monitor.CheckIntervalMs < 10 {
		return fmt.Errorf("check interval too small: %d ms", c.Monitor.CheckIntervalMs)
	}

	if c.Dedup.MaxTracked < 0 {
		return fmt.Errorf("dedup max_tracked cannot be negative: %d", c.Dedup.MaxTracked)
	}

	if c.Launcher.LaunchesPerMinute < 0 {
		return fmt.Errorf("launcher launches_per_minute cannot be negative: %d", c.Launcher.LaunchesPerMinute)
	}
	if c.Launcher.Burst < 0 {
		return fmt.Errorf("launcher burst cannot be negative: %d", c.Launcher.Burst)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch c.Logging.Output {
	case "stdout", "stderr", "none":
	default:
		return fmt.Errorf("invalid log output mode: %s", c.Logging.Output)
	}

	return nil
}

// DebugDirFor resolves the artifact directory for a source file,
// defaulting to a cursor_debug sibling of the source.
func (c *Config) DebugDirFor(sourceFile string) string {
	if c.Monitor.DebugDir != "" {
		return c.Monitor.DebugDir
	}
	return filepath.Join(filepath.Dir(sourceFile), "cursor_debug")
}
