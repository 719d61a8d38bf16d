// Package engine is the logging subsystem of the RPC engine that the bridge hooks into.
//
// Engine goroutines report diagnostics through Core.Log. Each message is checked against
// the shared severity gate, formatted into a pooled buffer, and handed to the installed
// log function. The buffer is recycled as soon as the function returns.
//
// Until a log function is installed, Core writes every diagnostic synchronously on the
// producing goroutine through a zerolog logger. Installation is a single atomic store:
// each diagnostic takes exactly one path, decided by the load made while emitting it.
package engine

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/trickstertwo/xclock"
	"go.uber.org/atomic"

	"github.com/trickstertwo/logbridge"
)

// Config is an explicit, code-first configuration for Core.
type Config struct {
	Gate    *logbridge.Gate // default: logbridge.NewGate(logbridge.DefaultThreshold)
	Writer  io.Writer       // default output before a log function is installed; default: os.Stderr
	Console bool            // pretty console output instead of JSON on the default path
}

// Core is the engine's logging entry point. It is safe for concurrent use.
type Core struct {
	gate    *logbridge.Gate
	logFunc atomic.Pointer[logbridge.LogFunc]
	def     zerolog.Logger
}

// New builds a Core with the default synchronous output active.
func New(cfg Config) *Core {
	if cfg.Gate == nil {
		cfg.Gate = logbridge.NewGate(logbridge.DefaultThreshold)
	}
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}
	w = zerolog.SyncWriter(w)
	if cfg.Console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339Nano}
	}
	return &Core{
		gate: cfg.Gate,
		def:  zerolog.New(w).Level(zerolog.DebugLevel),
	}
}

// Gate returns the gate checked by Log.
func (c *Core) Gate() *logbridge.Gate { return c.gate }

// Verbosity returns the minimum severity that Log emits.
func (c *Core) Verbosity() logbridge.Severity { return c.gate.Threshold() }

// SetVerbosity sets the minimum severity that Log emits.
func (c *Core) SetVerbosity(severity logbridge.Severity) error {
	return c.gate.SetThreshold(severity)
}

// SetLogFunction routes all subsequent diagnostics to fn. A nil fn restores the default
// synchronous output.
func (c *Core) SetLogFunction(fn logbridge.LogFunc) {
	if fn == nil {
		c.logFunc.Store(nil)
		return
	}
	c.logFunc.Store(&fn)
}

// Log emits one diagnostic. format follows fmt.Printf.
func (c *Core) Log(file string, line uint32, severity logbridge.Severity, format string, args ...any) {
	if !c.gate.ShouldEmit(severity) {
		return
	}
	buf := getBuf()
	if len(args) == 0 {
		buf.b = append(buf.b, format...)
	} else {
		buf.b = fmt.Appendf(buf.b, format, args...)
	}
	if fn := c.logFunc.Load(); fn != nil {
		(*fn)(file, line, severity, buf.b)
	} else {
		c.writeDefault(file, line, severity, buf.b)
	}
	putBuf(buf)
}

// Logf is Log with the caller's file and line.
func (c *Core) Logf(severity logbridge.Severity, format string, args ...any) {
	if !c.gate.ShouldEmit(severity) {
		return
	}
	file, line := "unknown", 0
	if _, f, l, ok := runtime.Caller(1); ok {
		file, line = f, l
	}
	c.Log(file, uint32(line), severity, format, args...)
}

func (c *Core) writeDefault(file string, line uint32, severity logbridge.Severity, msg []byte) {
	c.def.WithLevel(toZerologLevel(severity)).
		Str("ts", xclock.Now().UTC().Format(time.RFC3339Nano)).
		Str("file", filepath.Base(file)).
		Uint32("line", line).
		Msg(string(msg))
}

func toZerologLevel(s logbridge.Severity) zerolog.Level {
	switch s {
	case logbridge.SeverityDebug:
		return zerolog.DebugLevel
	case logbridge.SeverityInfo:
		return zerolog.InfoLevel
	default:
		return zerolog.ErrorLevel
	}
}
