// Package notify delivers transient user-facing notifications. Every
// recoverable error and every successful mutation surfaces one, mirroring the
// toast banners of the web client.
package notify

import (
	"sync"

	"go.uber.org/zap"
)

// Notifier receives user-facing notifications.
type Notifier interface {
	Success(msg string)
	Info(msg string)
	Error(msg string)
}

// Logger emits notifications through a zap logger. This is the default sink
// for the CLI, where the log stream is the user's screen.
type Logger struct {
	log *zap.SugaredLogger
}

// NewLogger creates a Logger notifier.
func NewLogger(log *zap.SugaredLogger) *Logger {
	return &Logger{log: log}
}

func (l *Logger) Success(msg string) { l.log.Infow(msg, "notice", "success") }
func (l *Logger) Info(msg string)    { l.log.Infow(msg, "notice", "info") }
func (l *Logger) Error(msg string)   { l.log.Errorw(msg, "notice", "error") }

// Event is a recorded notification.
type Event struct {
	Level   string
	Message string
}

// Recorder captures notifications for assertions in tests.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Success(msg string) { r.record("success", msg) }
func (r *Recorder) Info(msg string)    { r.record("info", msg) }
func (r *Recorder) Error(msg string)   { r.record("error", msg) }

func (r *Recorder) record(level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Level: level, Message: msg})
}

// Events returns a copy of all recorded notifications.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Reset discards all recorded notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
