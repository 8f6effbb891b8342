package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records lookup metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordLookup records a completed lookup with its duration and
	// error status.
	RecordLookup(ctx context.Context, sourceID string, duration time.Duration, err error)

	// RecordMiss records a lookup that found no value.
	RecordMiss(ctx context.Context, sourceID string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	lookups       metric.Int64Counter
	lookupLatency metric.Float64Histogram
	lookupErrors  metric.Int64Counter
	lookupMisses  metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("strictconf")

	lookups, err := meter.Int64Counter("strictconf.lookups",
		metric.WithDescription("Number of configuration lookups"),
	)
	if err != nil {
		return nil, err
	}

	lookupLatency, err := meter.Float64Histogram("strictconf.lookup.latency_ms",
		metric.WithDescription("Configuration lookup latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	lookupErrors, err := meter.Int64Counter("strictconf.lookup.errors",
		metric.WithDescription("Number of lookups that failed in the backing source"),
	)
	if err != nil {
		return nil, err
	}

	lookupMisses, err := meter.Int64Counter("strictconf.lookup.misses",
		metric.WithDescription("Number of lookups that found no value"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		lookups:       lookups,
		lookupLatency: lookupLatency,
		lookupErrors:  lookupErrors,
		lookupMisses:  lookupMisses,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordLookup records a completed lookup.
func (m *otelMetrics) RecordLookup(ctx context.Context, sourceID string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("source_id", sourceID),
	}

	m.lookups.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.lookupLatency.Record(ctx, float64(duration.Microseconds())/1000.0, metric.WithAttributes(attrs...))

	if err != nil {
		m.lookupErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordMiss records a lookup that found no value.
func (m *otelMetrics) RecordMiss(ctx context.Context, sourceID string) {
	attrs := []attribute.KeyValue{
		attribute.String("source_id", sourceID),
	}
	m.lookupMisses.Add(ctx, 1, metric.WithAttributes(attrs...))
}
