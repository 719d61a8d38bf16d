package logbridge

import "sync/atomic"

// notifier coalesces wake requests into at most one pending task on the executor.
// Every wake runs a full drain, so dropping redundant signals loses nothing.
type notifier struct {
	exec    Executor
	wake    func()
	onError func(error)
	pending atomic.Bool
}

func newNotifier(exec Executor, wake func(), onError func(error)) *notifier {
	return &notifier{exec: exec, wake: wake, onError: onError}
}

// signal may be called from any goroutine. It never blocks on the queue.
func (n *notifier) signal() {
	if !n.pending.CompareAndSwap(false, true) {
		return
	}
	if err := n.exec.Submit(n.run); err != nil {
		// the next signal retries; queued events are kept
		n.pending.Store(false)
		n.onError(&WakeError{Cause: err})
	}
}

// run executes on the consumer context. The flag is cleared before the drain so that a
// signal racing with the drain schedules another wake instead of being absorbed.
func (n *notifier) run() {
	n.pending.Store(false)
	n.wake()
}
