// Package zapsink delivers bridged engine diagnostics to a zap logger.
package zapsink

import (
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/logbridge"
)

// Options tunes the sink. The zero value is usable.
type Options struct {
	TimestampKey string // default "ts"
	FullPath     bool   // log the full source path instead of its base name
}

// Sink writes each event as one zap entry.
//
//   - The event's producer timestamp is written as tsKey with RFC3339Nano precision,
//     so the zap core should have TimeKey disabled.
//   - Logger.Check skips field construction for disabled levels.
type Sink struct {
	l     *zap.Logger
	tsKey string
	full  bool
}

// New creates a sink for the provided zap logger.
func New(l *zap.Logger, opts Options) *Sink {
	if l == nil {
		l = zap.NewNop()
	}
	if opts.TimestampKey == "" {
		opts.TimestampKey = "ts"
	}
	return &Sink{l: l, tsKey: opts.TimestampKey, full: opts.FullPath}
}

// Callback returns the function to register with the bridge.
func (s *Sink) Callback() logbridge.Callback { return s.Consume }

// Consume writes a single event.
func (s *Sink) Consume(e logbridge.LogEvent) {
	ce := s.l.Check(toZapLevel(e.Severity()), e.Message())
	if ce == nil {
		return
	}
	file := e.File()
	if !s.full {
		file = filepath.Base(file)
	}
	ce.Write(
		zap.String(s.tsKey, e.Time().UTC().Format(time.RFC3339Nano)),
		zap.String("file", file),
		zap.Uint32("line", e.Line()),
	)
}

func toZapLevel(s logbridge.Severity) zapcore.Level {
	switch s {
	case logbridge.SeverityDebug:
		return zapcore.DebugLevel
	case logbridge.SeverityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.ErrorLevel
	}
}

// NewJSON builds a zap JSON logger on ws at the given minimum level and wraps it in a
// Sink. The returned AtomicLevel can retune the backend independently of the engine gate.
func NewJSON(ws zapcore.WriteSyncer, min logbridge.Severity) (*Sink, zap.AtomicLevel) {
	al := zap.NewAtomicLevelAt(toZapLevel(min))
	enc := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:        "", // the sink injects "ts"
		LevelKey:       "level",
		MessageKey:     "message",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	})
	return New(zap.New(zapcore.NewCore(enc, ws, al)), Options{}), al
}
