package game

// Scheduler runs a callback at the next display refresh.
type Scheduler interface {
	RequestFrame(fn func())
}

// FrameQueue is a Scheduler driven by an external ticker.
// It is not safe for concurrent use; the host calls RunFrame from the same goroutine that
// drives the session.
type FrameQueue struct {
	pending []func()
}

// RequestFrame queues fn for the next RunFrame.
func (q *FrameQueue) RequestFrame(fn func()) {
	q.pending = append(q.pending, fn)
}

// Pending returns the number of queued callbacks.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// RunFrame runs the callbacks queued before the call and returns how many ran.
// Callbacks queued while running are deferred to the next RunFrame.
func (q *FrameQueue) RunFrame() int {
	fns := q.pending
	q.pending = nil
	for _, fn := range fns {
		fn()
	}
	return len(fns)
}
