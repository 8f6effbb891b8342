// Package observability provides opt-in observability around
// strictconf lookups: structured logging, metrics, and distributed
// tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// The validation core performs no logging of its own; everything here
// lives in a Provider decorator the caller wraps around a source.
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds a source identity to a logger.
// Returns a new logger with a source_id field.
func EnrichLogger(logger *slog.Logger, sourceID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("source_id", sourceID),
	)
}

// LogLookup logs a completed lookup that found a value.
func LogLookup(logger *slog.Logger, key, kind string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("config lookup",
		slog.String("key", key),
		slog.String("kind", kind),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogLookupMiss logs a lookup that found no value.
func LogLookupMiss(logger *slog.Logger, key string) {
	if logger == nil {
		return
	}
	logger.Debug("config lookup miss",
		slog.String("key", key),
	)
}

// LogLookupError logs a lookup that failed in the backing source.
func LogLookupError(logger *slog.Logger, key string, err error) {
	if logger == nil {
		return
	}
	logger.Error("config lookup failed",
		slog.String("key", key),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in
// milliseconds.
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000.0
	}
}
