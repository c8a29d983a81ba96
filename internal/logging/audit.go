// Package logging writes structured JSON events describing cipherdeck
// activity. User text and cipher keys are redacted before they are encoded.
package logging

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/RowanDark/cipherdeck/internal/redact"
)

type EventType string

const (
	EventTranscode          EventType = "transcode"
	EventValidationRejected EventType = "validation_rejected"
	EventBruteForce         EventType = "bruteforce"
	EventBatchLine          EventType = "batch_line"
	EventBatchComplete      EventType = "batch_complete"
	EventDetect             EventType = "detect"
	EventPipeline           EventType = "pipeline"
	EventAssistant          EventType = "assistant"
)

type Outcome string

const (
	OutcomeInfo     Outcome = "info"
	OutcomeOK       Outcome = "ok"
	OutcomeRejected Outcome = "rejected"
	OutcomeError    Outcome = "error"
)

// Event is a single log record.
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Component string         `json:"component"`
	RequestID string         `json:"request_id,omitempty"`
	EventType EventType      `json:"event_type"`
	Scheme    string         `json:"scheme,omitempty"`
	Direction string         `json:"direction,omitempty"`
	Outcome   Outcome        `json:"outcome,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Reason    string         `json:"reason,omitempty"`
}

type Option func(*config) error

type config struct {
	writers          []io.Writer
	closers          []io.Closer
	useDefaultWriter bool
}

func defaultConfig() *config {
	return &config{writers: []io.Writer{os.Stderr}, useDefaultWriter: true}
}

// WithWriter adds w as an additional sink.
func WithWriter(w io.Writer) Option {
	return func(cfg *config) error {
		if w == nil {
			return errors.New("writer cannot be nil")
		}
		cfg.writers = append(cfg.writers, w)
		return nil
	}
}

// WithFile appends events to the file at path. The file is closed by Close.
func WithFile(path string) Option {
	return func(cfg *config) error {
		if strings.TrimSpace(path) == "" {
			return errors.New("file path cannot be empty")
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return err
		}
		cfg.writers = append(cfg.writers, f)
		cfg.closers = append(cfg.closers, f)
		return nil
	}
}

// WithoutStderr drops the default stderr sink.
func WithoutStderr() Option {
	return func(cfg *config) error {
		cfg.useDefaultWriter = false
		filtered := cfg.writers[:0]
		for _, w := range cfg.writers {
			if w == os.Stderr {
				continue
			}
			filtered = append(filtered, w)
		}
		cfg.writers = filtered
		return nil
	}
}

type core struct {
	mu      sync.Mutex
	encoder *json.Encoder
	closers []io.Closer
}

// Logger emits events for one component. Loggers derived with WithComponent
// share the sinks of their parent.
type Logger struct {
	component   string
	core        *core
	ownsClosers bool
}

func New(component string, opts ...Option) (*Logger, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			for _, closer := range cfg.closers {
				_ = closer.Close()
			}
			return nil, err
		}
	}
	if !cfg.useDefaultWriter && len(cfg.writers) == 0 {
		return nil, errors.New("no writers configured for logger")
	}
	writer := io.MultiWriter(cfg.writers...)
	enc := json.NewEncoder(writer)
	enc.SetEscapeHTML(false)
	return &Logger{
		component:   component,
		core:        &core{encoder: enc, closers: cfg.closers},
		ownsClosers: true,
	}, nil
}

func MustNew(component string, opts ...Option) *Logger {
	logger, err := New(component, opts...)
	if err != nil {
		panic(err)
	}
	return logger
}

// Discard returns a logger that drops every event.
func Discard() *Logger {
	return MustNew("discard", WithoutStderr(), WithWriter(io.Discard))
}

// NewRequestID returns a fresh identifier for correlating events.
func NewRequestID() string {
	return uuid.NewString()
}

func (l *Logger) Close() error {
	if l == nil || !l.ownsClosers || l.core == nil {
		return nil
	}
	l.core.mu.Lock()
	defer l.core.mu.Unlock()
	var firstErr error
	for _, closer := range l.core.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	l.core.closers = nil
	return firstErr
}

// Emit writes event as one JSON line. Missing timestamps and components are
// filled in, and Reason and Metadata are redacted.
func (l *Logger) Emit(event Event) error {
	if l == nil {
		return errors.New("nil logger")
	}
	if l.core == nil {
		return errors.New("nil logger core")
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	} else {
		event.Timestamp = event.Timestamp.UTC()
	}
	if event.Component == "" {
		event.Component = l.component
	}
	event.Reason = redact.String(event.Reason)
	if len(event.Metadata) > 0 {
		event.Metadata = redact.Map(event.Metadata)
	}
	l.core.mu.Lock()
	defer l.core.mu.Unlock()
	return l.core.encoder.Encode(event)
}

func (l *Logger) WithComponent(component string) *Logger {
	if l == nil || l.core == nil {
		return nil
	}
	return &Logger{
		component:   component,
		core:        l.core,
		ownsClosers: false,
	}
}
