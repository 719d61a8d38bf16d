// Package binding is the host-facing surface of the engine: constant tables, metadata
// validators, the default roots override and the log bridge entry points.
//
// Init wires the pieces together in the order the engine expects: the severity gate is
// configured first, then the engine logging core, then the bridge bound to the consumer
// event loop. The engine keeps writing diagnostics synchronously until the host calls
// SetDefaultLoggerCallback.
package binding

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"io"

	eventloop "github.com/joeycumines/go-eventloop"
	"github.com/trickstertwo/xclock"
	"go.uber.org/multierr"

	"github.com/trickstertwo/logbridge"
	"github.com/trickstertwo/logbridge/engine"
)

// Config is an explicit, code-first configuration for Init.
type Config struct {
	// Loop is the consumer event loop. When nil, Init creates one and runs it until
	// Shutdown.
	Loop *eventloop.Loop
	// Executor overrides Loop as the consumer context.
	Executor logbridge.Executor

	// VerbosityEnv names the environment variable holding the initial verbosity.
	// Defaults to logbridge.VerbosityEnv.
	VerbosityEnv string
	// Verbosity ("debug", "info" or "error") is used when the environment variable is
	// unset. Defaults to logbridge.DefaultThreshold.
	Verbosity string

	EngineWriter  io.Writer // default output before a callback is registered
	EngineConsole bool

	Clock        xclock.Clock
	ErrorHandler logbridge.ErrorHandler
}

// Exports is the initialized binding.
type Exports struct {
	engine *engine.Core
	bridge *logbridge.Bridge
	roots  rootStore

	loop    *eventloop.Loop
	ownLoop bool
	runDone chan struct{} // closed once Run has returned; runErr is set before
	runErr  error
}

// Init configures verbosity, the engine logging core and the bridge.
func Init(cfg Config) (*Exports, error) {
	def := logbridge.DefaultThreshold
	if cfg.Verbosity != "" {
		s, err := logbridge.ParseSeverity(cfg.Verbosity)
		if err != nil {
			return nil, fmt.Errorf("binding: verbosity: %w", err)
		}
		def = s
	}
	gate, err := logbridge.GateFromEnv(cfg.VerbosityEnv, def)
	if err != nil {
		return nil, fmt.Errorf("binding: verbosity: %w", err)
	}

	x := &Exports{
		engine: engine.New(engine.Config{Gate: gate, Writer: cfg.EngineWriter, Console: cfg.EngineConsole}),
	}

	exec := cfg.Executor
	if exec == nil {
		x.loop = cfg.Loop
		if x.loop == nil {
			if x.loop, err = eventloop.New(); err != nil {
				return nil, fmt.Errorf("binding: event loop: %w", err)
			}
			x.ownLoop = true
		}
		exec = logbridge.LoopExecutor(x.loop)
	}

	x.bridge, err = logbridge.NewBuilder().
		WithEngine(x.engine).
		WithExecutor(exec).
		WithGate(gate).
		WithClock(cfg.Clock).
		WithErrorHandler(cfg.ErrorHandler).
		Build()
	if err != nil {
		if x.ownLoop {
			_ = x.loop.Close()
		}
		return nil, err
	}

	if x.ownLoop {
		x.runDone = make(chan struct{})
		go func() {
			x.runErr = x.loop.Run(context.Background())
			close(x.runDone)
		}()
	}
	return x, nil
}

// Engine returns the engine logging core.
func (x *Exports) Engine() *engine.Core { return x.engine }

// Bridge returns the log bridge.
func (x *Exports) Bridge() *logbridge.Bridge { return x.bridge }

// Tables returns the exported constant tables.
func (x *Exports) Tables() map[string]Table { return Tables() }

// SetDefaultLoggerCallback routes engine diagnostics to cb on the consumer loop. The
// first call replaces the engine's synchronous output for the rest of the process.
func (x *Exports) SetDefaultLoggerCallback(cb logbridge.Callback) error {
	return x.bridge.RegisterCallback(cb)
}

// SetLogVerbosity sets the minimum severity from a host number.
func (x *Exports) SetLogVerbosity(v uint32) error {
	s, err := logbridge.SeverityFromUint32(v)
	if err != nil {
		return err
	}
	return x.bridge.SetSeverityThreshold(s)
}

// SetDefaultRootsPem overrides the default trust roots. Call it once, before creating
// any server credentials.
func (x *Exports) SetDefaultRootsPem(pem string) { x.roots.set(pem) }

// RootsOverride returns the PEM set by SetDefaultRootsPem, if any.
func (x *Exports) RootsOverride() ([]byte, bool) { return x.roots.override() }

// CertPool parses the roots override.
func (x *Exports) CertPool() (*x509.CertPool, error) { return x.roots.certPool() }

// Shutdown stops an event loop created by Init, running any wake still queued on it.
// Loops supplied through Config are left to their owner. Calling it again after the
// loop has stopped returns the same result without blocking.
func (x *Exports) Shutdown(ctx context.Context) error {
	if !x.ownLoop {
		return nil
	}
	err := ignoreTerminated(x.loop.Shutdown(ctx))
	select {
	case <-x.runDone:
		err = multierr.Append(err, ignoreTerminated(x.runErr))
	case <-ctx.Done():
		err = multierr.Append(err, ctx.Err())
	}
	return err
}

// Close is Shutdown without a deadline.
func (x *Exports) Close() error { return x.Shutdown(context.Background()) }

func ignoreTerminated(err error) error {
	if errors.Is(err, eventloop.ErrLoopTerminated) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
