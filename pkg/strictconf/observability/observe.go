package observability

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/strictconf/strictconf/pkg/strictconf"
)

// Provider decorates a strictconf.Provider with logging, metrics, and
// tracing. Validation semantics are untouched: values and errors pass
// through exactly as the wrapped provider produced them.
type Provider struct {
	next     strictconf.Provider
	sourceID string
	logger   *slog.Logger
	metrics  MetricsRecorder
	spans    SpanManager
}

// Provider conformance.
var _ strictconf.Provider = (*Provider)(nil)

// Option configures a wrapped provider.
type Option func(*Provider)

// WithLogger enables structured lookup logging.
// A nil logger disables logging (the default).
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

// WithMetrics enables OTel lookup metrics.
// Default: disabled.
func WithMetrics(enabled bool) Option {
	return func(p *Provider) {
		if enabled {
			p.metrics = NewMetricsRecorder()
		} else {
			p.metrics = NoopMetrics{}
		}
	}
}

// WithTracing enables OTel lookup spans.
// Default: disabled.
func WithTracing(enabled bool) Option {
	return func(p *Provider) {
		if enabled {
			p.spans = NewSpanManager()
		} else {
			p.spans = NoopSpanManager{}
		}
	}
}

// WithSourceID sets the identity attached to logs, metrics, and spans.
// Default: a generated UUID.
func WithSourceID(id string) Option {
	return func(p *Provider) {
		if id != "" {
			p.sourceID = id
		}
	}
}

// Wrap decorates next with the configured observability features.
func Wrap(next strictconf.Provider, opts ...Option) *Provider {
	p := &Provider{
		next:     next,
		sourceID: uuid.NewString(),
		metrics:  NoopMetrics{},
		spans:    NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = EnrichLogger(p.logger, p.sourceID)
	return p
}

// SourceID returns the identity attached to this provider's telemetry.
func (p *Provider) SourceID() string {
	return p.sourceID
}

// Get implements strictconf.Provider.
func (p *Provider) Get(key string) (strictconf.Value, error) {
	ctx, span := p.spans.StartLookupSpan(context.Background(), p.sourceID, key)
	start := time.Now()

	v, err := p.next.Get(key)

	duration := time.Since(start)
	p.metrics.RecordLookup(ctx, p.sourceID, duration, err)

	switch {
	case err != nil:
		LogLookupError(p.logger, key, err)
	case v.Kind() == strictconf.KindAbsent:
		p.metrics.RecordMiss(ctx, p.sourceID)
		LogLookupMiss(p.logger, key)
	default:
		LogLookup(p.logger, key, v.Kind().String(), float64(duration.Microseconds())/1000.0)
	}

	p.spans.EndSpanWithError(span, err)
	return v, err
}
