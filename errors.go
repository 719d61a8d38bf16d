package logbridge

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrNoEngine is returned by Build when no Engine was configured.
	ErrNoEngine = errors.New("logbridge: engine is required")

	// ErrNoExecutor is returned by Build when no consumer Executor was configured.
	ErrNoExecutor = errors.New("logbridge: executor is required")

	// ErrNilCallback is returned when registering something that cannot be called.
	ErrNilCallback = errors.New("logbridge: callback must be a non-nil function")

	// ErrInvalidSeverity is returned for severities outside DEBUG, INFO and ERROR.
	ErrInvalidSeverity = errors.New("logbridge: invalid severity")
)

// CallbackPanicError wraps a value recovered from a consumer callback.
type CallbackPanicError struct {
	Event LogEvent
	Value any
}

func (e *CallbackPanicError) Error() string {
	return fmt.Sprintf("logbridge: callback panicked on %s:%d: %v", e.Event.File(), e.Event.Line(), e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *CallbackPanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// WakeError reports that the consumer executor refused a wake task. Events stay queued.
type WakeError struct {
	Cause error
}

func (e *WakeError) Error() string {
	return "logbridge: consumer wake failed: " + e.Cause.Error()
}

func (e *WakeError) Unwrap() error { return e.Cause }

// ErrorHandler receives bridge-internal failures. It may be called from any goroutine.
type ErrorHandler func(error)

func defaultErrorHandler(err error) { fmt.Fprintf(os.Stderr, "logbridge error: %v\n", err) }
