package logbridge

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/trickstertwo/xclock"
)

// LogFunc is the engine-side log hook. The engine may call it from any goroutine, and
// may reuse message as soon as the call returns.
type LogFunc func(file string, line uint32, severity Severity, message []byte)

// Engine is the logging subsystem the bridge installs itself into. After
// SetLogFunction returns, the engine must route every diagnostic through fn and stop
// using its own synchronous output.
type Engine interface {
	SetLogFunction(fn LogFunc)
}

// State is the bridge installation state. It moves from StateUninstalled to
// StateInstalled at most once.
type State uint32

const (
	StateUninstalled State = iota
	StateInstalled
)

func (s State) String() string {
	switch s {
	case StateUninstalled:
		return "UNINSTALLED"
	case StateInstalled:
		return "INSTALLED"
	default:
		return fmt.Sprintf("State(%d)", uint32(s))
	}
}

// Bridge delivers engine diagnostics from any number of producer goroutines to one
// callback running on the consumer executor.
//
// A Bridge is constructed once (see Builder) and handed to both the engine hook and the
// consumer binding; there is no package-level instance.
type Bridge struct {
	engine   Engine
	gate     *Gate
	clock    xclock.Clock
	onError  ErrorHandler
	queue    eventQueue
	notify   *notifier
	callback atomic.Pointer[Callback]
	state    atomic.Uint32
	install  sync.Once
	st       stats
}

func newBridge(cfg Config) *Bridge {
	b := &Bridge{
		engine:  cfg.Engine,
		gate:    cfg.Gate,
		clock:   cfg.Clock,
		onError: cfg.ErrorHandler,
	}
	b.notify = newNotifier(cfg.Executor, b.dispatch, b.reportWake)
	return b
}

// State reports whether the bridge has been hooked into the engine.
func (b *Bridge) State() State { return State(b.state.Load()) }

// Gate returns the severity gate shared with the engine.
func (b *Bridge) Gate() *Gate { return b.gate }

// RegisterCallback installs or replaces the consumer callback.
//
// The first successful call hooks the bridge into the engine and moves the state to
// StateInstalled; later calls only swap the callback. A nil callback is rejected and
// changes nothing.
func (b *Bridge) RegisterCallback(cb Callback) error {
	if cb == nil {
		return ErrNilCallback
	}
	b.callback.Store(&cb)
	b.install.Do(func() {
		b.engine.SetLogFunction(b.Emit)
		b.state.Store(uint32(StateInstalled))
	})
	return nil
}

// SetSeverityThreshold updates the gate. It is valid in either state.
func (b *Bridge) SetSeverityThreshold(severity Severity) error {
	return b.gate.SetThreshold(severity)
}

// Emit is the LogFunc installed into the engine. It returns without blocking on the
// consumer; the event is delivered later on the executor.
func (b *Bridge) Emit(file string, line uint32, severity Severity, message []byte) {
	if !b.gate.ShouldEmit(severity) {
		b.st.filtered.Add(1)
		return
	}
	e, ok := b.buildEvent(file, line, severity, message)
	if !ok {
		return
	}
	b.queue.push(e)
	b.st.emitted.Add(1)
	b.notify.signal()
}

// buildEvent never lets a failure escape onto the producer goroutine: the event is
// dropped instead.
func (b *Bridge) buildEvent(file string, line uint32, severity Severity, message []byte) (e LogEvent, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			b.st.dropped.Add(1)
			ok = false
		}
	}()
	return newLogEvent(file, line, severity, message, b.clock.Now()), true
}

// dispatch runs on the consumer executor once per wake.
func (b *Bridge) dispatch() {
	events := b.queue.drainAll()
	for i := range events {
		b.deliver(events[i])
		events[i] = LogEvent{}
	}
}

func (b *Bridge) deliver(e LogEvent) {
	cb := b.callback.Load()
	if cb == nil {
		b.st.dropped.Add(1)
		return
	}
	defer func() {
		if r := recover(); r != nil {
			b.st.callbackPanics.Add(1)
			b.onError(&CallbackPanicError{Event: e, Value: r})
		}
	}()
	(*cb)(e)
	b.st.delivered.Add(1)
}

func (b *Bridge) reportWake(err error) {
	b.st.wakeFailures.Add(1)
	b.onError(err)
}

// Stats returns a snapshot of the bridge counters.
func (b *Bridge) Stats() StatsSnapshot { return b.st.snapshot(b.queue.len()) }
