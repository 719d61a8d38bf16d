package logbridge

import (
	eventloop "github.com/joeycumines/go-eventloop"
)

// Executor is the consumer's execution context. Submit must be safe to call from any
// goroutine, and every submitted task must run on the same single goroutine, one at a time.
type Executor interface {
	Submit(task func()) error
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(task func()) error

func (f ExecutorFunc) Submit(task func()) error { return f(task) }

type loopExecutor struct {
	loop *eventloop.Loop
}

// LoopExecutor binds the bridge to an event loop. Callbacks fire once the loop runs.
func LoopExecutor(loop *eventloop.Loop) Executor {
	return loopExecutor{loop: loop}
}

func (e loopExecutor) Submit(task func()) error {
	return e.loop.Submit(func() { task() })
}
