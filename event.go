package logbridge

import (
	"strings"
	"time"
)

// LogEvent is one diagnostic produced by the engine. It owns all of its memory: the
// source file and message are copied at construction, since the engine reuses its
// buffers as soon as the log function returns.
type LogEvent struct {
	file     string
	message  string
	at       time.Time
	line     uint32
	severity Severity
}

// newLogEvent copies file and message into memory owned by the event.
func newLogEvent(file string, line uint32, severity Severity, message []byte, at time.Time) LogEvent {
	return LogEvent{
		file:     strings.Clone(file),
		message:  string(message),
		at:       at.Truncate(time.Millisecond),
		line:     line,
		severity: severity,
	}
}

// NewLogEvent builds an event outside the producer path, e.g. for sink tests.
func NewLogEvent(file string, line uint32, severity Severity, message string, at time.Time) LogEvent {
	return newLogEvent(file, line, severity, []byte(message), at)
}

func (e LogEvent) File() string       { return e.file }
func (e LogEvent) Line() uint32       { return e.line }
func (e LogEvent) Severity() Severity { return e.severity }
func (e LogEvent) Message() string    { return e.message }

// Time is the producer-side timestamp at millisecond resolution.
func (e LogEvent) Time() time.Time { return e.at }

// TimestampMillis is Time as milliseconds since the Unix epoch.
func (e LogEvent) TimestampMillis() int64 { return e.at.UnixMilli() }

// Callback consumes events on the consumer context.
type Callback func(e LogEvent)

// FuncCallback adapts the positional host signature
// (file, line, severity, message, timestampMs) to a Callback.
func FuncCallback(fn func(file string, line uint32, severity string, message string, timestampMs int64)) Callback {
	if fn == nil {
		return nil
	}
	return func(e LogEvent) {
		fn(e.file, e.line, e.severity.String(), e.message, e.TimestampMillis())
	}
}
