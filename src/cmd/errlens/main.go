package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"errlens/src/internal/config"
	"errlens/src/internal/monitor"
	"errlens/src/internal/version"

	"github.com/lixenwraith/log"
)

var logger *log.Logger

func main() {
	// Parse flags first to get quiet mode early
	if err := parseFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Initialize output handler with quiet mode
	InitOutputHandler(*quiet)

	// Handle version flag
	if *showVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	// Set config file environment if specified
	if *configFile != "" {
		os.Setenv("ERRLENS_CONFIG_FILE", *configFile)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		FatalError(1, "Failed to load config: %v\n", err)
	}
	applyFlagOverrides(cfg)

	// Resolve the source file: positional argument wins, then config,
	// then the probed default locations.
	sourceFile := flag.Arg(0)
	if sourceFile == "" {
		sourceFile = cfg.Monitor.SourceFile
	}
	if sourceFile == "" {
		sourceFile = findSourceFile()
	}
	if sourceFile == "" {
		Error("Could not find unity_errors.json\n\n")
		flag.Usage()
		os.Exit(1)
	}

	// Initialize logger with quiet mode awareness
	if err := initializeLogger(cfg, *quiet); err != nil {
		FatalError(1, "Failed to initialize logger: %v\n", err)
	}
	defer shutdownLogger()

	logger.Info("msg", "errlens starting",
		"version", version.String(),
		"source_file", sourceFile,
		"debug_dir", cfg.DebugDirFor(sourceFile),
		"check_interval_ms", cfg.Monitor.CheckIntervalMs)

	// Create context for shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	mon, err := buildMonitor(cfg, sourceFile)
	if err != nil {
		logger.Error("msg", "Failed to bootstrap monitor", "error", err)
		os.Exit(1)
	}

	if err := mon.Start(ctx); err != nil {
		logger.Error("msg", "Failed to start monitor", "error", err)
		os.Exit(1)
	}

	// Startup banner for the operator
	Print("errlens %s initialized\n", version.Short())
	Print("  Log file:  %s\n", sourceFile)
	Print("  Debug dir: %s\n", cfg.DebugDirFor(sourceFile))
	Print("  Interval:  %dms\n", cfg.Monitor.CheckIntervalMs)
	Print("  Filters:   Errors, Exceptions, Assertions\n")
	Print("  Waiting for logs...\n")

	// Start status reporter if enabled
	if enableStatusReporter() {
		go statusReporter(ctx, mon)
	}

	// Wait for shutdown signal
	<-sigChan

	// Operator-initiated stop; not an error.
	logger.Info("msg", "Shutdown signal received, stopping monitor...")
	Print("\nerrlens stopped\n")

	cancel()

	// Shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	done := make(chan struct{})
	go func() {
		mon.Stop()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("msg", "Shutdown complete")
	case <-shutdownCtx.Done():
		logger.Error("msg", "Shutdown timeout exceeded - forcing exit")
		os.Exit(1)
	}
}

// applyFlagOverrides layers CLI flags over the loaded configuration.
func applyFlagOverrides(cfg *config.Config) {
	if *debugDir != "" {
		cfg.Monitor.DebugDir = *debugDir
	}
	if *intervalMs > 0 {
		cfg.Monitor.CheckIntervalMs = *intervalMs
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *logOutput != "" {
		cfg.Logging.Output = *logOutput
	}
}

// statusReporter periodically logs monitor statistics.
func statusReporter(ctx context.Context, mon *monitor.Monitor) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := mon.GetStats()
			logger.Debug("msg", "Status report",
				"cycles", stats.Cycles,
				"entries_seen", stats.EntriesSeen,
				"artifacts_written", stats.ArtifactsWritten,
				"launch_attempts", stats.LaunchAttempts,
				"informational", stats.Informational,
				"parse_failures", stats.Source.ParseFailures)
		}
	}
}

func shutdownLogger() {
	if logger != nil {
		if err := logger.Shutdown(2 * time.Second); err != nil {
			// Best effort - can't log the shutdown error
			Error("Logger shutdown error: %v\n", err)
		}
	}
}

func enableStatusReporter() bool {
	// Status reporter can be disabled via environment variable
	if os.Getenv("ERRLENS_DISABLE_STATUS_REPORTER") == "1" {
		return false
	}
	return true
}
