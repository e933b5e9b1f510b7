package refinement

import "sync/atomic"

// Quota is the cancellation token checked by termination and by long-running
// mutation operators. Trip is idempotent and safe to call from any goroutine
// while the driver runs single-threaded on another.
type Quota struct {
	tripped atomic.Bool
}

// Trip marks the quota as reached. Safe to call more than once.
func (q *Quota) Trip() {
	q.tripped.Store(true)
}

// IsReached reports whether Trip has been called.
func (q *Quota) IsReached() bool {
	return q.tripped.Load()
}
