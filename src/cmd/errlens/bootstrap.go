package main

import (
	"fmt"
	"time"

	"errlens/src/internal/artifact"
	"errlens/src/internal/config"
	"errlens/src/internal/dedup"
	"errlens/src/internal/launcher"
	"errlens/src/internal/monitor"
	"errlens/src/internal/source"

	"github.com/lixenwraith/log"
)

// buildMonitor wires the pipeline: source -> dedup -> classify ->
// artifact writer -> editor launcher, orchestrated by the monitor.
func buildMonitor(cfg *config.Config, sourceFile string) (*monitor.Monitor, error) {
	src, err := source.NewFileSource(sourceFile, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create file source: %w", err)
	}

	writer, err := artifact.NewWriter(cfg.DebugDirFor(sourceFile), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create artifact writer: %w", err)
	}

	tracker := dedup.NewTracker(cfg.Dedup.MaxTracked)

	var l launcher.Launcher
	if cfg.Launcher.Enabled {
		l = launcher.NewEditorLauncher(
			cfg.Launcher.Command,
			cfg.Launcher.LaunchesPerMinute,
			cfg.Launcher.Burst,
			logger)
	} else {
		l = launcher.Disabled{}
	}

	interval := time.Duration(cfg.Monitor.CheckIntervalMs) * time.Millisecond
	return monitor.New(src, tracker, writer, l, interval, logger), nil
}

// initializeLogger sets up the logger based on configuration
func initializeLogger(cfg *config.Config, quiet bool) error {
	logger = log.NewLogger()

	var configArgs []string

	if quiet {
		// In quiet mode, disable ALL logging output
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=false",
			"level=255")

		return logger.InitWithDefaults(configArgs...)
	}

	levelValue, err := parseLogLevel(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	configArgs = append(configArgs, fmt.Sprintf("level=%d", levelValue))

	switch cfg.Logging.Output {
	case "none":
		configArgs = append(configArgs, "disable_file=true", "enable_stdout=false")

	case "stdout":
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=true",
			"stdout_target=stdout")

	case "stderr":
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=true",
			"stdout_target=stderr")

	default:
		return fmt.Errorf("invalid log output mode: %s", cfg.Logging.Output)
	}

	return logger.InitWithDefaults(configArgs...)
}
