package observability

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// newTestLogger returns a debug-level logger writing to buf.
func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func TestEnrichLogger(t *testing.T) {
	t.Run("adds source_id field", func(t *testing.T) {
		var buf bytes.Buffer
		logger := EnrichLogger(newTestLogger(&buf), "src-42")

		logger.Info("hello")

		assert.Contains(t, buf.String(), "source_id=src-42")
	})

	t.Run("nil logger stays nil", func(t *testing.T) {
		assert.Nil(t, EnrichLogger(nil, "src"))
	})
}

func TestLogLookup(t *testing.T) {
	var buf bytes.Buffer
	LogLookup(newTestLogger(&buf), "database.port", "int", 1.25)

	out := buf.String()
	assert.Contains(t, out, "config lookup")
	assert.Contains(t, out, "key=database.port")
	assert.Contains(t, out, "kind=int")
	assert.Contains(t, out, "duration_ms=1.25")
}

func TestLogLookupMiss(t *testing.T) {
	var buf bytes.Buffer
	LogLookupMiss(newTestLogger(&buf), "feature.flag")

	out := buf.String()
	assert.Contains(t, out, "config lookup miss")
	assert.Contains(t, out, "key=feature.flag")
}

func TestLogLookupError(t *testing.T) {
	var buf bytes.Buffer
	LogLookupError(newTestLogger(&buf), "host", errors.New("store closed"))

	out := buf.String()
	assert.Contains(t, out, "config lookup failed")
	assert.Contains(t, out, "store closed")
	assert.Contains(t, out, "level=ERROR")
}

func TestLogHelpers_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		LogLookup(nil, "k", "string", 1.0)
		LogLookupMiss(nil, "k")
		LogLookupError(nil, "k", errors.New("x"))
	})
}

func TestTimedOperation(t *testing.T) {
	elapsed := TimedOperation()
	time.Sleep(5 * time.Millisecond)

	ms := elapsed()
	assert.GreaterOrEqual(t, ms, 4.0)
	assert.Less(t, ms, 1000.0)
}
