package timer

import (
	"sort"
	"time"
)

// Manual is a virtual-clock Scheduler. Time only moves when Advance or
// RunUntilIdle is called, and callbacks run synchronously on that caller's
// goroutine in (due time, schedule order) order. It is not safe for
// concurrent use.
type Manual struct {
	now     time.Time
	seq     uint64
	pending []manualEntry
}

type manualEntry struct {
	id  uint64
	due time.Time
	fn  func()
}

// NewManual returns a Manual scheduler whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Schedule(delay time.Duration, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}
	m.seq++
	e := manualEntry{id: m.seq, due: m.now.Add(delay), fn: fn}
	// Stable position: after every entry due at or before e.due.
	i := sort.Search(len(m.pending), func(i int) bool {
		return m.pending[i].due.After(e.due)
	})
	m.pending = append(m.pending, manualEntry{})
	copy(m.pending[i+1:], m.pending[i:])
	m.pending[i] = e
	return Handle{id: e.id}
}

func (m *Manual) Cancel(h Handle) bool {
	if h.IsZero() {
		return false
	}
	for i, e := range m.pending {
		if e.id == h.id {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return true
		}
	}
	return false
}

func (m *Manual) Now() time.Time {
	return m.now
}

// Advance moves the clock forward by d, firing every callback that falls due
// on the way, including callbacks scheduled by callbacks. It returns the
// number of callbacks fired.
func (m *Manual) Advance(d time.Duration) int {
	target := m.now.Add(d)
	fired := 0
	for len(m.pending) > 0 && !m.pending[0].due.After(target) {
		e := m.pending[0]
		m.pending = m.pending[1:]
		m.now = e.due
		e.fn()
		fired++
	}
	m.now = target
	return fired
}

// RunUntilIdle fires pending callbacks in order, jumping the clock to each
// due time, until nothing is pending or limit callbacks have fired.
func (m *Manual) RunUntilIdle(limit int) int {
	fired := 0
	for len(m.pending) > 0 && fired < limit {
		e := m.pending[0]
		m.pending = m.pending[1:]
		if e.due.After(m.now) {
			m.now = e.due
		}
		e.fn()
		fired++
	}
	return fired
}

// Pending returns the number of callbacks waiting to fire.
func (m *Manual) Pending() int {
	return len(m.pending)
}

// NextDue returns the due time of the earliest pending callback.
func (m *Manual) NextDue() (time.Time, bool) {
	if len(m.pending) == 0 {
		return time.Time{}, false
	}
	return m.pending[0].due, true
}
