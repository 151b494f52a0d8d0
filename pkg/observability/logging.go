// Package observability provides logging capabilities for runbook-lint.
package observability

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat represents the logging format.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// contextKey is a type for context keys to avoid collisions.
type contextKey int

const (
	// RunIDKey is the context key for the batch run ID.
	RunIDKey contextKey = iota
	// LoggerKey is the context key for the run-scoped logger.
	LoggerKey
)

// LoggerConfig holds configuration for the logger.
type LoggerConfig struct {
	Level      LogLevel  `yaml:"level"`
	Format     LogFormat `yaml:"format"`
	OutputPath string    `yaml:"output_path,omitempty"`
}

// ApplyDefaults applies default values to logging config.
func (c *LoggerConfig) ApplyDefaults() {
	if c.Level == "" {
		c.Level = LogLevelInfo
	}

	if c.Format == "" {
		c.Format = LogFormatText
	}
}

// DefaultLogger returns a new default logger.
func DefaultLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	return logger
}

// ConfigureLogger configures the logger based on the provided config.
func ConfigureLogger(cfg LoggerConfig) (*logrus.Logger, error) {
	logger := logrus.New()

	// Set level.
	switch cfg.Level {
	case LogLevelDebug:
		logger.SetLevel(logrus.DebugLevel)
	case LogLevelInfo:
		logger.SetLevel(logrus.InfoLevel)
	case LogLevelWarn:
		logger.SetLevel(logrus.WarnLevel)
	case LogLevelError:
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	// Set format.
	switch cfg.Format {
	case LogFormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}

	// Set output. Reports go to stdout, so logs default to stderr.
	if cfg.OutputPath != "" {
		file, err := os.OpenFile(cfg.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}

		logger.SetOutput(file)
	} else {
		logger.SetOutput(os.Stderr)
	}

	return logger, nil
}

// GenerateRunID generates a new batch run ID.
func GenerateRunID() string {
	return uuid.New().String()
}

// GetRunID retrieves the run ID from context.
func GetRunID(ctx context.Context) string {
	if id, ok := ctx.Value(RunIDKey).(string); ok {
		return id
	}

	return ""
}

// WithRunID adds a run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// GetLogger retrieves the logger from context, or returns a default logger.
func GetLogger(ctx context.Context) logrus.FieldLogger {
	if logger, ok := ctx.Value(LoggerKey).(logrus.FieldLogger); ok {
		return logger
	}

	return DefaultLogger()
}

// RunScopedLogger creates a logger carrying the run ID from context.
func RunScopedLogger(base logrus.FieldLogger, ctx context.Context) logrus.FieldLogger {
	if runID := GetRunID(ctx); runID != "" {
		return base.WithField("run_id", runID)
	}

	return base
}

// IsValidLogLevel checks if a log level is valid.
func IsValidLogLevel(level string) bool {
	switch LogLevel(strings.ToLower(level)) {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true
	default:
		return false
	}
}

// IsValidLogFormat checks if a log format is valid.
func IsValidLogFormat(format string) bool {
	switch LogFormat(strings.ToLower(format)) {
	case LogFormatText, LogFormatJSON:
		return true
	default:
		return false
	}
}
