package engine

import "github.com/parasxparkash/pyBackTester/internal/types"

// eventQueue is the strict FIFO event queue. One queue lives for the
// lifetime of one engine instance; no process-wide state.
type eventQueue struct {
	events []types.Event
	head   int
}

func (q *eventQueue) push(e types.Event) {
	q.events = append(q.events, e)
}

func (q *eventQueue) pop() (types.Event, bool) {
	if q.head >= len(q.events) {
		// Reset the backing slice between bar ticks.
		q.events = q.events[:0]
		q.head = 0

		return nil, false
	}

	e := q.events[q.head]
	q.head++

	return e, true
}

func (q *eventQueue) empty() bool {
	return q.head >= len(q.events)
}
