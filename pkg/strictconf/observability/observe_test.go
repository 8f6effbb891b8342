package observability

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strictconf/strictconf/pkg/strictconf"
)

// TestWrap_Passthrough verifies the decorator never alters values or
// errors from the wrapped provider.
func TestWrap_Passthrough(t *testing.T) {
	inner := strictconf.NewStatic(map[string]strictconf.Value{
		"host":    strictconf.String("db.internal"),
		"port":    strictconf.Int(5432),
		"verbose": strictconf.Bool(true),
	})
	wrapped := Wrap(inner)

	tests := []struct {
		name string
		key  string
		want strictconf.Value
	}{
		{"string value", "host", strictconf.String("db.internal")},
		{"int value", "port", strictconf.Int(5432)},
		{"bool value", "verbose", strictconf.Bool(true)},
		{"missing key", "nope", strictconf.Absent()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := wrapped.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

// TestWrap_ErrorPassthrough verifies provider errors surface unchanged.
func TestWrap_ErrorPassthrough(t *testing.T) {
	sentinel := errors.New("source unavailable")
	inner := strictconf.Func(func(key string) (strictconf.Value, error) {
		return strictconf.Absent(), sentinel
	})
	wrapped := Wrap(inner)

	_, err := wrapped.Get("anything")
	assert.ErrorIs(t, err, sentinel)
}

// TestWrap_ValidationUnchanged verifies strict validation still applies
// through the decorator.
func TestWrap_ValidationUnchanged(t *testing.T) {
	inner := strictconf.NewStatic(map[string]strictconf.Value{
		"port": strictconf.String("8080"),
	})
	acc := strictconf.New(Wrap(inner))

	_, err := acc.Int("port")
	require.Error(t, err)
	assert.True(t, strictconf.IsTypeMismatch(err))
}

// TestWrap_SourceID verifies source identity configuration.
func TestWrap_SourceID(t *testing.T) {
	t.Run("explicit ID", func(t *testing.T) {
		p := Wrap(strictconf.NewStatic(nil), WithSourceID("prod-db"))
		assert.Equal(t, "prod-db", p.SourceID())
	})

	t.Run("empty ID keeps generated default", func(t *testing.T) {
		p := Wrap(strictconf.NewStatic(nil), WithSourceID(""))
		assert.NotEmpty(t, p.SourceID())
	})

	t.Run("default is unique per wrap", func(t *testing.T) {
		a := Wrap(strictconf.NewStatic(nil))
		b := Wrap(strictconf.NewStatic(nil))
		assert.NotEqual(t, a.SourceID(), b.SourceID())
	})
}

// TestWrap_Logging verifies lookup logging output.
func TestWrap_Logging(t *testing.T) {
	inner := strictconf.NewStatic(map[string]strictconf.Value{
		"host": strictconf.String("localhost"),
	})

	t.Run("logs found value", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		wrapped := Wrap(inner, WithLogger(logger), WithSourceID("test-src"))

		_, err := wrapped.Get("host")
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "config lookup")
		assert.Contains(t, out, "key=host")
		assert.Contains(t, out, "kind=string")
		assert.Contains(t, out, "source_id=test-src")
	})

	t.Run("logs miss", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		wrapped := Wrap(inner, WithLogger(logger))

		_, err := wrapped.Get("missing")
		require.NoError(t, err)

		assert.Contains(t, buf.String(), "config lookup miss")
	})

	t.Run("logs source failure", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		failing := strictconf.Func(func(key string) (strictconf.Value, error) {
			return strictconf.Absent(), errors.New("connection refused")
		})
		wrapped := Wrap(failing, WithLogger(logger))

		_, err := wrapped.Get("host")
		require.Error(t, err)

		out := buf.String()
		assert.Contains(t, out, "config lookup failed")
		assert.Contains(t, out, "connection refused")
	})

	t.Run("nil logger is silent", func(t *testing.T) {
		wrapped := Wrap(inner)
		assert.NotPanics(t, func() {
			_, _ = wrapped.Get("host")
			_, _ = wrapped.Get("missing")
		})
	})
}

// TestWrap_MetricsDisabledByDefault verifies noop recorders are used
// unless explicitly enabled.
func TestWrap_MetricsDisabledByDefault(t *testing.T) {
	p := Wrap(strictconf.NewStatic(nil))

	_, isNoopMetrics := p.metrics.(NoopMetrics)
	assert.True(t, isNoopMetrics)

	_, isNoopSpans := p.spans.(NoopSpanManager)
	assert.True(t, isNoopSpans)
}

// TestWrap_MetricsEnabled verifies WithMetrics swaps in a real recorder.
func TestWrap_MetricsEnabled(t *testing.T) {
	_, cleanup := setupMetricsTest(t)
	defer cleanup()

	p := Wrap(strictconf.NewStatic(nil), WithMetrics(true))

	_, isNoop := p.metrics.(NoopMetrics)
	assert.False(t, isNoop)
}

// TestWrap_TracingEnabled verifies spans are emitted for lookups.
func TestWrap_TracingEnabled(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	inner := strictconf.NewStatic(map[string]strictconf.Value{
		"host": strictconf.String("localhost"),
	})
	wrapped := Wrap(inner, WithTracing(true), WithSourceID("traced"))

	_, err := wrapped.Get("host")
	require.NoError(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "strictconf.get", spans[0].Name)
}

// TestWrap_ChainComposition verifies the decorator composes with Chain.
func TestWrap_ChainComposition(t *testing.T) {
	primary := Wrap(strictconf.NewStatic(map[string]strictconf.Value{
		"timeout": strictconf.Null(),
	}), WithSourceID("primary"))
	fallback := Wrap(strictconf.NewStatic(map[string]strictconf.Value{
		"timeout": strictconf.Int(30),
	}), WithSourceID("fallback"))

	acc := strictconf.New(strictconf.NewChain(primary, fallback))

	n, err := acc.Int("timeout")
	require.NoError(t, err)
	assert.Equal(t, int64(30), n)
}
