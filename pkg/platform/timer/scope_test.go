package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onboarding/pkg/platform/sentinel"
)

// leakyScheduler records callbacks and ignores Cancel, standing in for a
// timer that already expired when its owner was torn down.
type leakyScheduler struct {
	fns []func()
}

func (l *leakyScheduler) Schedule(_ time.Duration, fn func()) Handle {
	l.fns = append(l.fns, fn)
	return Handle{id: uint64(len(l.fns))}
}

func (l *leakyScheduler) Cancel(Handle) bool { return false }

func (l *leakyScheduler) Now() time.Time { return epoch }

func TestScope_SingleTimerInFlight(t *testing.T) {
	m := NewManual(epoch)
	s := NewScope(m)

	_, err := s.Schedule(time.Second, func() {})
	require.NoError(t, err)
	assert.True(t, s.Busy())

	_, err = s.Schedule(time.Second, func() {})
	assert.ErrorIs(t, err, sentinel.ErrConflict)

	m.Advance(time.Second)
	assert.False(t, s.Busy())

	_, err = s.Schedule(time.Second, func() {})
	assert.NoError(t, err, "a new timer is allowed once the previous fired")
}

func TestScope_CallbackMayRescheduleItself(t *testing.T) {
	m := NewManual(epoch)
	s := NewScope(m)
	ticks := 0
	var tick func()
	tick = func() {
		ticks++
		if ticks < 3 {
			_, err := s.Schedule(time.Second, tick)
			require.NoError(t, err)
		}
	}
	_, err := s.Schedule(time.Second, tick)
	require.NoError(t, err)

	m.Advance(5 * time.Second)
	assert.Equal(t, 3, ticks)
}

func TestScope_CancelAllowsRescheduling(t *testing.T) {
	m := NewManual(epoch)
	s := NewScope(m)
	fired := false
	_, err := s.Schedule(time.Second, func() { fired = true })
	require.NoError(t, err)

	assert.True(t, s.Cancel())
	assert.False(t, s.Cancel())

	_, err = s.Schedule(time.Second, func() {})
	require.NoError(t, err)
	m.Advance(time.Minute)
	assert.False(t, fired)
}

func TestScope_CloseRetiresScope(t *testing.T) {
	m := NewManual(epoch)
	s := NewScope(m)
	fired := false
	_, err := s.Schedule(time.Second, func() { fired = true })
	require.NoError(t, err)

	s.Close()
	assert.True(t, s.Closed())
	assert.Equal(t, 0, m.Pending())

	_, err = s.Schedule(time.Second, func() {})
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)

	m.Advance(time.Minute)
	assert.False(t, fired)
}

func TestScope_StaleFiringIsDiscarded(t *testing.T) {
	leaky := &leakyScheduler{}
	stale := 0
	s := NewScope(leaky, WithStaleHook(func() { stale++ }))
	fired := false
	_, err := s.Schedule(time.Second, func() { fired = true })
	require.NoError(t, err)

	s.Close()
	require.Len(t, leaky.fns, 1)
	leaky.fns[0]()

	assert.False(t, fired)
	assert.Equal(t, 1, stale)
}

func TestScope_SupersededFiringIsDiscarded(t *testing.T) {
	leaky := &leakyScheduler{}
	stale := 0
	s := NewScope(leaky, WithStaleHook(func() { stale++ }))
	first, second := false, false

	_, err := s.Schedule(time.Second, func() { first = true })
	require.NoError(t, err)
	s.Cancel()
	_, err = s.Schedule(time.Second, func() { second = true })
	require.NoError(t, err)

	leaky.fns[0]()
	leaky.fns[1]()

	assert.False(t, first)
	assert.True(t, second)
	assert.Equal(t, 1, stale)
}
