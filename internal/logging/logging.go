// Package logging provides structured logging using Go's slog package.
package logging

import (
	"log/slog"
	"os"
	"time"
)

var (
	// defaultLogger is the global logger instance.
	defaultLogger *slog.Logger
)

func init() {
	// Initialize with a default logger (text format, Warn level) so library
	// use stays quiet until the CLI configures verbosity.
	InitLogger(LevelWarn, FormatText)
}

// Level represents a log level.
type Level int

const (
	// LevelDebug is for debug messages.
	LevelDebug Level = iota
	// LevelInfo is for informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// ParseLevel maps a level name to a Level, defaulting to info.
func ParseLevel(name string) Level {
	switch name {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Format represents a log output format.
type Format int

const (
	// FormatJSON outputs logs in JSON format.
	FormatJSON Format = iota
	// FormatText outputs logs in human-readable text format.
	FormatText
)

// InitLogger initializes the global logger with the specified level and format.
func InitLogger(level Level, format Format) {
	var slogLevel slog.Level
	switch level {
	case LevelDebug:
		slogLevel = slog.LevelDebug
	case LevelInfo:
		slogLevel = slog.LevelInfo
	case LevelWarn:
		slogLevel = slog.LevelWarn
	case LevelError:
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: slogLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// GetLogger returns the global logger instance.
func GetLogger() *slog.Logger {
	return defaultLogger
}

// Helper functions for common logging patterns

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// RunStarted logs the start of a simplification run.
func RunStarted(runID, inputPath string, level int, args ...any) {
	allArgs := []any{
		"run_id", runID,
		"input", inputPath,
		"level", level,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Info("run_started", allArgs...)
}

// PartProcessed logs completion of one target part.
func PartProcessed(partName, role string, removed int, args ...any) {
	allArgs := []any{
		"part", partName,
		"role", role,
		"elements_removed", removed,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Debug("part_processed", allArgs...)
}

// RunCompleted logs successful completion of a run.
func RunCompleted(runID, outputPath string, parts, removed int, elapsed time.Duration, args ...any) {
	allArgs := []any{
		"run_id", runID,
		"output", outputPath,
		"parts", parts,
		"elements_removed", removed,
		"duration_ms", elapsed.Milliseconds(),
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Info("run_completed", allArgs...)
}

// RunFailed logs a failed run.
func RunFailed(runID, inputPath string, err error, args ...any) {
	allArgs := []any{
		"run_id", runID,
		"input", inputPath,
		"error", err.Error(),
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Error("run_failed", allArgs...)
}
