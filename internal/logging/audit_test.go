package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerEmit(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New("test", WithoutStderr(), WithWriter(buf))
	require.NoError(t, err)

	event := Event{EventType: EventTranscode, Scheme: "caesar", Direction: "encode", Outcome: OutcomeOK}
	require.NoError(t, logger.Emit(event))

	var decoded Event
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "test", decoded.Component)
	assert.Equal(t, EventTranscode, decoded.EventType)
	assert.Equal(t, OutcomeOK, decoded.Outcome)
	assert.Equal(t, "caesar", decoded.Scheme)
	assert.False(t, decoded.Timestamp.IsZero())
}

func TestLoggerNormalisesTimestamp(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := MustNew("test", WithoutStderr(), WithWriter(buf))

	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, loc)
	require.NoError(t, logger.Emit(Event{Timestamp: ts, EventType: EventDetect}))

	var decoded Event
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, time.UTC, decoded.Timestamp.Location())
	assert.True(t, ts.Equal(decoded.Timestamp))
}

func TestLoggerRedactsTextAndKeys(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := MustNew("test", WithoutStderr(), WithWriter(buf))

	require.NoError(t, logger.Emit(Event{
		EventType: EventTranscode,
		Metadata: map[string]any{
			"text":   "attack at dawn",
			"key":    "LEMON",
			"length": 14,
		},
		Reason: "contact me at someone@example.com",
	}))

	out := buf.String()
	assert.NotContains(t, out, "attack at dawn")
	assert.NotContains(t, out, "LEMON")
	assert.NotContains(t, out, "someone@example.com")
	assert.Contains(t, out, "[REDACTED_TEXT len=14]")
	assert.Contains(t, out, "[REDACTED_SECRET]")
	assert.Contains(t, out, `"length":14`)
}

func TestWithComponentSharesSinks(t *testing.T) {
	buf := &bytes.Buffer{}
	parent := MustNew("cli", WithoutStderr(), WithWriter(buf))
	child := parent.WithComponent("batch")

	require.NoError(t, parent.Emit(Event{EventType: EventPipeline}))
	require.NoError(t, child.Emit(Event{EventType: EventBatchComplete}))

	var components []string
	scanner := bufio.NewScanner(strings.NewReader(buf.String()))
	for scanner.Scan() {
		var e Event
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		components = append(components, e.Component)
	}
	assert.Equal(t, []string{"cli", "batch"}, components)
	assert.NoError(t, child.Close(), "derived loggers do not own sinks")
}

func TestWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	logger, err := New("file", WithoutStderr(), WithFile(path))
	require.NoError(t, err)
	require.NoError(t, logger.Emit(Event{EventType: EventBatchLine}))
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"event_type":"batch_line"`)
}

func TestNewRejectsMissingWriters(t *testing.T) {
	_, err := New("none", WithoutStderr())
	assert.Error(t, err)

	_, err = New("nil", WithWriter(nil))
	assert.Error(t, err)

	_, err = New("empty", WithFile("  "))
	assert.Error(t, err)
}

func TestNilLogger(t *testing.T) {
	var l *Logger
	assert.Error(t, l.Emit(Event{}))
	assert.NoError(t, l.Close())
	assert.Nil(t, l.WithComponent("x"))
}

func TestNewRequestID(t *testing.T) {
	id := NewRequestID()
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, NewRequestID())
}

func TestDiscard(t *testing.T) {
	assert.NoError(t, Discard().Emit(Event{EventType: EventAssistant}))
}
