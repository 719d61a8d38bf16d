package logbridge

import "sync/atomic"

type stats struct {
	emitted        atomic.Uint64
	filtered       atomic.Uint64
	delivered      atomic.Uint64
	dropped        atomic.Uint64
	callbackPanics atomic.Uint64
	wakeFailures   atomic.Uint64
}

// StatsSnapshot is a point-in-time counters snapshot.
type StatsSnapshot struct {
	// Emitted counts events that passed the gate and were queued.
	Emitted uint64
	// Filtered counts events rejected by the gate inside Emit.
	Filtered uint64
	// Delivered counts callback invocations that returned normally.
	Delivered uint64
	// Dropped counts events discarded: failed construction, or no callback at dispatch.
	Dropped        uint64
	CallbackPanics uint64
	WakeFailures   uint64
	// Pending is the queue length when the snapshot was taken.
	Pending int
}

func (s *stats) snapshot(pending int) StatsSnapshot {
	return StatsSnapshot{
		Emitted:        s.emitted.Load(),
		Filtered:       s.filtered.Load(),
		Delivered:      s.delivered.Load(),
		Dropped:        s.dropped.Load(),
		CallbackPanics: s.callbackPanics.Load(),
		WakeFailures:   s.wakeFailures.Load(),
		Pending:        pending,
	}
}
