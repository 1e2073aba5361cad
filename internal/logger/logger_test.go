package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "line: %s", line)
		entries = append(entries, entry)
	}
	return entries
}

func TestSlogLoggerWritesStructuredFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := NewSlogLogger(buf, LogLevelDebug, time.UTC)

	log.Module("import").Info("batch completed",
		String("source", "jwst_sample.json"),
		Int("imported", 3),
		Bool("dry_run", false))

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "batch completed", entries[0]["msg"])
	assert.Equal(t, "import", entries[0]["module"])
	assert.Equal(t, "jwst_sample.json", entries[0]["source"])
	assert.InDelta(t, 3, entries[0]["imported"], 0)
	assert.Equal(t, false, entries[0]["dry_run"])
}

func TestSlogLoggerRespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := NewSlogLogger(buf, LogLevelWarn, time.UTC)

	log.Debug("hidden")
	log.Info("hidden")
	log.Trace("hidden")
	log.Warn("shown")
	log.Error("shown too")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.Equal(t, "ERROR", entries[1]["level"])
}

func TestTraceLevelIsNamed(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	NewSlogLogger(buf, LogLevelTrace, time.UTC).Trace("sql query")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "TRACE", entries[0]["level"])
}

func TestNestedModulesAndAccumulatedFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := NewSlogLogger(buf, LogLevelInfo, time.UTC).
		Module("catalog").
		Module("approval").
		With(Uint("observation_id", 7))

	log.Info("approved", Int("version", 2))

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "catalog.approval", entries[0]["module"])
	assert.InDelta(t, 7, entries[0]["observation_id"], 0)
	assert.InDelta(t, 2, entries[0]["version"], 0)
}

func TestWithContextAddsTraceID(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := NewSlogLogger(buf, LogLevelInfo, time.UTC)

	ctx := WithTraceID(context.Background(), "run-123")
	log.WithContext(ctx).Info("started")
	log.WithContext(context.Background()).Info("no trace")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "run-123", entries[0]["trace_id"])
	assert.NotContains(t, entries[1], "trace_id")
}

func TestErrorFieldHandlesNil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Error(nil).Value)
	assert.Equal(t, "boom", Error(assertError("boom")).Value)
}

type assertError string

func (e assertError) Error() string { return string(e) }

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, LogLevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LogLevelWarn, ParseLevel("warning"))
	assert.Equal(t, LogLevelTrace, ParseLevel(" trace "))
	assert.Equal(t, LogLevelInfo, ParseLevel("verbose"))
}

func TestConsoleLoggerUsesTextFormat(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	NewConsoleLogger(buf, LogLevelInfo, time.UTC).Module("cli").Info("ready", String("db", "sqlite"))

	out := buf.String()
	assert.Contains(t, out, "msg=ready")
	assert.Contains(t, out, "module=cli")
	assert.Contains(t, out, "db=sqlite")
}

func TestGormAdapterLevels(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := NewSlogLogger(buf, LogLevelTrace, time.UTC)
	adapter := NewGormLoggerAdapter(log, 10*time.Millisecond)

	ctx := WithTraceID(context.Background(), "run-9")
	sqlFn := func() (string, int64) { return "SELECT 1", 1 }

	adapter.Trace(ctx, time.Now(), sqlFn, nil)
	adapter.Trace(ctx, time.Now().Add(-time.Second), sqlFn, nil)
	adapter.Trace(ctx, time.Now(), sqlFn, gorm.ErrRecordNotFound)
	adapter.Trace(ctx, time.Now(), sqlFn, assertError("locked"))

	entries := decodeLines(t, buf)
	require.Len(t, entries, 4)
	assert.Equal(t, "sql query", entries[0]["msg"])
	assert.Equal(t, "TRACE", entries[0]["level"])
	assert.Equal(t, "slow query", entries[1]["msg"])
	assert.Equal(t, "sql query", entries[2]["msg"])
	assert.Equal(t, "query error", entries[3]["msg"])
	assert.Equal(t, "locked", entries[3]["error"])
	for _, e := range entries {
		assert.Equal(t, "run-9", e["trace_id"])
	}
}
