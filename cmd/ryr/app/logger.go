package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/rgreinho/request-yo-racks-api/pkg/logging"
)

// NewLogger creates a configured logger based on the application configuration.
// Log level precedence (highest to lowest):
//  1. --log-level flag or log.level (RYR_LOG_LEVEL)
//  2. -v/--verbose flag (shortcut for debug)
//  3. -q/--quiet flag (shortcut for warn)
//  4. Default (info)
func NewLogger(config *Config) zerolog.Logger {
	level := determineLogLevel(config)

	logConfig := logging.DefaultConfig()
	logConfig.Level = level
	logConfig.NoColor = logConfig.NoColor || config.NoColor
	logConfig.AddCaller = level == "debug" || level == "trace"
	if config.Log.Format != "" {
		logConfig.Format = config.Log.Format
	}
	if config.Log.Output != "" {
		logConfig.Output = config.Log.Output
	}

	return logging.NewLoggerFromConfig(logConfig)
}

// determineLogLevel determines the log level using clear precedence rules.
func determineLogLevel(config *Config) string {
	// 1. Explicit level always wins
	if config.Log.Level != "" {
		validated := validateLogLevel(config.Log.Level)
		if validated != config.Log.Level {
			fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using %q\n", config.Log.Level, validated)
		}
		return validated
	}

	// 2. Both specified - use quiet (more restrictive)
	if config.Verbose && config.Quiet {
		fmt.Fprintf(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet\n")
		return "warn"
	}

	// 3. Boolean shortcuts
	if config.Verbose {
		return "debug"
	}
	if config.Quiet {
		return "warn"
	}

	return "info"
}

// validateLogLevel returns level when valid and "info" otherwise.
func validateLogLevel(level string) string {
	switch level {
	case "trace", "debug", "info", "warn", "error":
		return level
	default:
		return "info"
	}
}
