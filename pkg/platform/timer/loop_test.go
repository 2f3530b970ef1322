package timer

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onboarding/pkg/platform/sentinel"
)

func startLoop(t *testing.T) (*Loop, context.CancelFunc) {
	t.Helper()
	loop := NewLoop(16)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		_ = loop.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-stopped
	})
	return loop, cancel
}

func TestLoop_TimerFiresOnLoop(t *testing.T) {
	loop, _ := startLoop(t)
	fired := make(chan struct{})

	require.NoError(t, loop.Call(context.Background(), func() {
		loop.Schedule(5*time.Millisecond, func() { close(fired) })
	}))

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
}

func TestLoop_CancelBeforeExpiry(t *testing.T) {
	loop, _ := startLoop(t)
	var calls atomic.Int32

	require.NoError(t, loop.Call(context.Background(), func() {
		h := loop.Schedule(20*time.Millisecond, func() { calls.Add(1) })
		assert.True(t, loop.Cancel(h))
		assert.False(t, loop.Cancel(h))
	}))

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestLoop_CancelAfterExpiryBeforeDispatch(t *testing.T) {
	loop, _ := startLoop(t)
	var calls atomic.Int32
	ctx := context.Background()

	// Hold the loop busy past the timer's expiry, then cancel from inside
	// the loop before the expired callback gets its turn.
	require.NoError(t, loop.Call(ctx, func() {
		h := loop.Schedule(time.Millisecond, func() { calls.Add(1) })
		time.Sleep(20 * time.Millisecond)
		loop.Cancel(h)
	}))

	require.NoError(t, loop.Call(ctx, func() {}))
	assert.Equal(t, int32(0), calls.Load())
}

func TestLoop_SerializesWork(t *testing.T) {
	loop, _ := startLoop(t)
	ctx := context.Background()
	counter := 0

	for range 100 {
		require.NoError(t, loop.Do(ctx, func() { counter++ }))
	}
	require.NoError(t, loop.Call(ctx, func() {}))

	var got int
	require.NoError(t, loop.Call(ctx, func() { got = counter }))
	assert.Equal(t, 100, got)
}

func TestLoop_StoppedLoopRejectsWork(t *testing.T) {
	loop, cancel := startLoop(t)
	require.NoError(t, loop.Call(context.Background(), func() {}))
	cancel()

	require.Eventually(t, func() bool {
		return loop.Do(context.Background(), func() {}) != nil
	}, time.Second, 5*time.Millisecond)
	err := loop.Call(context.Background(), func() {})
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
}

func TestLoop_RunsOnce(t *testing.T) {
	loop := NewLoop(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, loop.Run(ctx), context.Canceled)
	assert.ErrorIs(t, loop.Run(context.Background()), sentinel.ErrInvalidState)
}
