package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lixenwraith/log"
)

// Command-line flags
var (
	// General flags
	configFile  = flag.String("config", "", "Config file path")
	debugDir    = flag.String("debug-dir", "", "Artifact output directory (overrides config)")
	intervalMs  = flag.Int("interval-ms", 0, "Poll interval in milliseconds (overrides config)")
	showVersion = flag.Bool("version", false, "Show version information")
	quiet       = flag.Bool("quiet", false, "Suppress all console output")

	// Logging flags
	logLevel  = flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	logOutput = flag.String("log-output", "", "Log output: stdout, stderr, none (overrides config)")
)

func init() {
	flag.Usage = customUsage
}

func customUsage() {
	fmt.Fprintf(os.Stderr, "errlens - Engine Error Log Monitor\n\n")
	fmt.Fprintf(os.Stderr, "Usage: %s [options] [source-file]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Polls a JSON error log, writes a Markdown debug artifact per new\n")
	fmt.Fprintf(os.Stderr, "error/exception/assertion, and opens it in your editor.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")

	fmt.Fprintf(os.Stderr, "\nGeneral:\n")
	fmt.Fprintf(os.Stderr, "  -config string\n\tConfig file path\n")
	fmt.Fprintf(os.Stderr, "  -debug-dir string\n\tArtifact output directory (overrides config)\n")
	fmt.Fprintf(os.Stderr, "  -interval-ms int\n\tPoll interval in milliseconds (overrides config)\n")
	fmt.Fprintf(os.Stderr, "  -version\n\tShow version information\n")
	fmt.Fprintf(os.Stderr, "  -quiet\n\tSuppress all console output\n")

	fmt.Fprintf(os.Stderr, "\nLogging:\n")
	fmt.Fprintf(os.Stderr, "  -log-level string\n\tLog level: debug, info, warn, error (overrides config)\n")
	fmt.Fprintf(os.Stderr, "  -log-output string\n\tLog output: stdout, stderr, none (overrides config)\n")

	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  # Monitor an explicit log file\n")
	fmt.Fprintf(os.Stderr, "  %s /path/to/Logs/unity_errors.json\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "  # Auto-discover the log file from the project root\n")
	fmt.Fprintf(os.Stderr, "  %s\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "  # Slow polling with debug logging\n")
	fmt.Fprintf(os.Stderr, "  %s --interval-ms 5000 --log-level debug\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "Probed locations when no source file is given:\n")
	for _, p := range defaultSourcePaths() {
		fmt.Fprintf(os.Stderr, "  %s\n", p)
	}

	fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
	fmt.Fprintf(os.Stderr, "  ERRLENS_CONFIG_FILE              Config file path\n")
	fmt.Fprintf(os.Stderr, "  ERRLENS_CONFIG_DIR               Config directory\n")
	fmt.Fprintf(os.Stderr, "  ERRLENS_DISABLE_STATUS_REPORTER  Disable periodic status reports (set to 1)\n")
}

func parseFlags() error {
	flag.Parse()

	if flag.NArg() > 1 {
		return fmt.Errorf("at most one source file argument expected, got %d", flag.NArg())
	}

	if *intervalMs < 0 {
		return fmt.Errorf("invalid interval-ms: %d", *intervalMs)
	}

	// Validate log-level flag if provided
	if *logLevel != "" {
		if _, err := parseLogLevel(*logLevel); err != nil {
			return fmt.Errorf("invalid log-level: %s (valid: debug, info, warn, error)", *logLevel)
		}
	}

	// Validate log-output flag if provided
	if *logOutput != "" {
		validOutputs := map[string]bool{
			"stdout": true, "stderr": true, "none": true,
		}
		if !validOutputs[*logOutput] {
			return fmt.Errorf("invalid log-output: %s (valid: stdout, stderr, none)", *logOutput)
		}
	}

	return nil
}

func parseLogLevel(level string) (int, error) {
	switch strings.ToLower(level) {
	case "debug":
		return int(log.LevelDebug), nil
	case "info":
		return int(log.LevelInfo), nil
	case "warn", "warning":
		return int(log.LevelWarn), nil
	case "error":
		return int(log.LevelError), nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}
