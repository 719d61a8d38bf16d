// Package slogsink delivers bridged engine diagnostics to a log/slog logger.
package slogsink

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/trickstertwo/logbridge"
)

// Sink builds slog.Attrs directly and uses LogAttrs for low overhead.
type Sink struct {
	l *slog.Logger
}

func New(l *slog.Logger) *Sink {
	if l == nil {
		l = slog.Default()
	}
	return &Sink{l: l}
}

// Callback returns the function to register with the bridge.
func (s *Sink) Callback() logbridge.Callback { return s.Consume }

func (s *Sink) Consume(e logbridge.LogEvent) {
	s.l.LogAttrs(context.Background(), toSlog(e.Severity()), e.Message(),
		slog.Time("ts", e.Time()),
		slog.String("file", e.File()),
		slog.Int64("line", int64(e.Line())),
	)
}

func toSlog(s logbridge.Severity) slog.Level {
	switch s {
	case logbridge.SeverityDebug:
		return slog.LevelDebug
	case logbridge.SeverityInfo:
		return slog.LevelInfo
	default:
		return slog.LevelError
	}
}

// NewJSON builds a Sink over a slog JSON handler. The returned LevelVar retunes the
// handler at runtime.
func NewJSON(w io.Writer, min logbridge.Severity) (*Sink, *slog.LevelVar) {
	if w == nil {
		w = os.Stdout
	}
	lv := new(slog.LevelVar)
	lv.Set(toSlog(min))
	return New(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lv}))), lv
}
