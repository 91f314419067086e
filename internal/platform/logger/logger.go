// Package logger provides structured logging functionality for the application.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/dkratzer/taskboard-api/internal/config"
)

// contextKey is the private type used for stashing the logger in a context.
type contextKey struct{}

var loggerKey = contextKey{}

// Setup initializes and configures the application's logging system based on
// the provided configuration. It creates a structured JSON logger with the
// appropriate log level and sets it as the default logger for the application.
//
// It accepts a ServerConfig containing the log level setting and returns the
// configured logger and any error encountered during setup.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	// Parse the log level from configuration (case-insensitive)
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		// If the log level is invalid, use info level as default and log a warning
		level = slog.LevelInfo

		tmpLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewJSONHandler(os.Stdout, opts)
	logger := slog.New(handler)

	// Set this logger as the default for the application.
	// This allows using the slog package functions directly
	// (slog.Info, slog.Error, etc.)
	slog.SetDefault(logger)

	return logger, nil
}

// WithLogger returns a new context carrying the given logger.
// Handlers and middleware use this to propagate request-scoped loggers
// (e.g., with a trace ID attached) down into services and stores.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext retrieves the logger from the context, falling back to the
// process-wide default logger when none is present.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// FromContextOrDefault retrieves the logger from the context, falling back
// to the provided default when none is present.
func FromContextOrDefault(ctx context.Context, def *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	if def != nil {
		return def
	}
	return slog.Default()
}
