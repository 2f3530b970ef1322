// Package timer is the single time source for every simulated asynchronous
// step of the onboarding flow.
//
// All suspension is expressed as "schedule a callback and return". A
// Scheduler fires each scheduled callback at most once, and never after it
// has been canceled. Callbacks run on the scheduler's dispatch goroutine
// (the caller of Manual.Advance, or the goroutine running Loop.Run), so code
// driven by one Scheduler is single-threaded.
package timer

import (
	"time"
)

// Handle identifies one scheduled callback. The zero Handle refers to nothing.
type Handle struct {
	id uint64
}

// IsZero reports whether h was never returned by a Scheduler.
func (h Handle) IsZero() bool {
	return h.id == 0
}

// Scheduler schedules one-shot callbacks.
type Scheduler interface {
	// Schedule arranges for fn to run once after delay. Negative delays are
	// treated as zero.
	Schedule(delay time.Duration, fn func()) Handle
	// Cancel prevents a pending callback from running. It reports whether the
	// callback was still pending.
	Cancel(h Handle) bool
	// Now is the scheduler's notion of the current time.
	Now() time.Time
}
