package workflow

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// SetupLogger configures the application-wide logger.
// It uses "tint" for colorized, structured logging that is easy to read in terminals.
func SetupLogger(level string, profile string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level: logLevel,
	})

	return slog.New(handler).With("oci_profile", profile)
}

// resolveProfile applies the profile precedence: command-line override first,
// then the OCI_PROFILE environment variable, then the config file, then DEFAULT.
func resolveProfile(override string, configProfile string) string {
	if override != "" {
		return override
	}
	if env := os.Getenv("OCI_PROFILE"); env != "" {
		return env
	}
	if configProfile != "" {
		return configProfile
	}
	return "DEFAULT"
}
