package logbridge

import "sync"

// eventQueue is the only state shared between producers and the consumer.
// The lock guards events and nothing else; no callback runs while it is held.
type eventQueue struct {
	mu     sync.Mutex
	events []LogEvent
}

func (q *eventQueue) push(e LogEvent) {
	q.mu.Lock()
	q.events = append(q.events, e)
	q.mu.Unlock()
}

// drainAll takes every pending event in one swap. The returned slice is owned by the
// caller; producers append to a fresh slice from then on.
func (q *eventQueue) drainAll() []LogEvent {
	q.mu.Lock()
	events := q.events
	q.events = nil
	q.mu.Unlock()
	return events
}

func (q *eventQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
