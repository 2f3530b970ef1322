package timer

import (
	"time"

	"onboarding/pkg/platform/sentinel"
)

// Scope owns the timers of one screen activation.
//
// Invariants:
//   - at most one callback is in flight; scheduling another before it fires
//     or is canceled fails with sentinel.ErrConflict
//   - after Close nothing scheduled through the scope runs, and Schedule
//     fails with sentinel.ErrUnavailable
type Scope struct {
	sched   Scheduler
	pending Handle
	closed  bool
	onStale func()
}

// ScopeOption configures a Scope.
type ScopeOption func(*Scope)

// WithStaleHook is called instead of a callback that reaches a closed or
// superseded scope.
func WithStaleHook(fn func()) ScopeOption {
	return func(s *Scope) {
		s.onStale = fn
	}
}

// NewScope binds a fresh scope to sched.
func NewScope(sched Scheduler, opts ...ScopeOption) *Scope {
	s := &Scope{sched: sched}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule runs fn once after delay unless the scope is canceled or closed first.
func (s *Scope) Schedule(delay time.Duration, fn func()) (Handle, error) {
	if s.closed {
		return Handle{}, sentinel.ErrUnavailable
	}
	if !s.pending.IsZero() {
		return Handle{}, sentinel.ErrConflict
	}
	var h Handle
	h = s.sched.Schedule(delay, func() {
		if s.closed || s.pending != h {
			if s.onStale != nil {
				s.onStale()
			}
			return
		}
		s.pending = Handle{}
		fn()
	})
	s.pending = h
	return h, nil
}

// Cancel drops the in-flight callback, if any, and reports whether one was pending.
func (s *Scope) Cancel() bool {
	if s.pending.IsZero() {
		return false
	}
	h := s.pending
	s.pending = Handle{}
	return s.sched.Cancel(h)
}

// Close cancels the in-flight callback and retires the scope.
func (s *Scope) Close() {
	s.Cancel()
	s.closed = true
}

// Busy reports whether a callback is in flight.
func (s *Scope) Busy() bool {
	return !s.pending.IsZero()
}

// Closed reports whether Close has been called.
func (s *Scope) Closed() bool {
	return s.closed
}

func (s *Scope) Now() time.Time {
	return s.sched.Now()
}
