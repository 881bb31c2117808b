package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(t *testing.T) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return New(Options{Level: "debug", Format: "json", Output: &buf, ServiceName: "test"}), &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestNew_JSONFieldNames(t *testing.T) {
	l, buf := newBufferLogger(t)
	l.Info("hello")

	line := decodeLine(t, buf)
	assert.Equal(t, "hello", line["message"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "test", line["service"])
	assert.Contains(t, line, "timestamp")
	assert.Contains(t, line["file"], "logger_test.go:")
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "chatty", Output: &buf})
	l.Debug("hidden")
	assert.Zero(t, buf.Len())
}

func TestContextFields(t *testing.T) {
	l, buf := newBufferLogger(t)
	ctx := l.WithContext(context.Background())
	ctx = SetRequestID(ctx, "req-1")
	ctx = SetJobID(ctx, 42)
	ctx = SetComponent(ctx, "matcher")

	CtxInfo(ctx, "matching %d candidates", 3)

	line := decodeLine(t, buf)
	assert.Equal(t, "req-1", line[FieldRequestID])
	assert.Equal(t, float64(42), line[FieldJobID])
	assert.Equal(t, "matcher", line[FieldComponent])
	assert.Equal(t, "matching 3 candidates", line["message"])
	assert.Equal(t, "req-1", RequestID(ctx))
}

func TestEntryMetrics(t *testing.T) {
	l, buf := newBufferLogger(t)
	ctx := l.WithContext(context.Background())

	With(Fields{FieldCandidates: 9}).WithCount(2).WithDuration(1500 * time.Millisecond).Info(ctx, "done")

	line := decodeLine(t, buf)
	assert.Equal(t, float64(9), line[FieldCandidates])
	assert.Equal(t, float64(2), line[FieldCount])
	assert.Equal(t, float64(1500), line[FieldDurationMs])
}

func TestFromContext_DefaultWhenMissing(t *testing.T) {
	assert.Same(t, Default(), FromContext(context.Background()))
}
