// Package zerologsink delivers bridged engine diagnostics to a zerolog logger.
package zerologsink

import (
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"github.com/trickstertwo/logbridge"
)

// Sink writes each event as one zerolog entry with the producer timestamp as "ts".
// The logger is never modified after New; the minimum level is held separately so
// SetMinSeverity may be called from any goroutine.
type Sink struct {
	l   zerolog.Logger
	min atomic.Int32
}

func New(l zerolog.Logger) *Sink {
	s := &Sink{l: l}
	s.min.Store(int32(l.GetLevel()))
	return s
}

// Callback returns the function to register with the bridge.
func (s *Sink) Callback() logbridge.Callback { return s.Consume }

// Consume writes a single event. Levels below the logger's level are dropped before an
// Event is allocated.
func (s *Sink) Consume(e logbridge.LogEvent) {
	lvl := mapSeverity(e.Severity())
	if lvl < zerolog.Level(s.min.Load()) {
		return
	}
	s.l.WithLevel(lvl).
		Str("ts", e.Time().UTC().Format(time.RFC3339Nano)).
		Str("file", filepath.Base(e.File())).
		Uint32("line", e.Line()).
		Msg(e.Message())
}

// SetMinSeverity retunes the sink filter. Entries that pass it are still subject to
// the logger's own level.
func (s *Sink) SetMinSeverity(min logbridge.Severity) {
	s.min.Store(int32(mapSeverity(min)))
}

func mapSeverity(s logbridge.Severity) zerolog.Level {
	switch s {
	case logbridge.SeverityDebug:
		return zerolog.DebugLevel
	case logbridge.SeverityInfo:
		return zerolog.InfoLevel
	default:
		return zerolog.ErrorLevel
	}
}
