package timer

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"onboarding/pkg/platform/sentinel"
)

// Loop is a real-time Scheduler backed by an event loop. Timer expirations
// and host work posted with Do or Call are executed one at a time on the
// goroutine running Run, which keeps everything it drives single-threaded.
type Loop struct {
	queue chan func()
	done  chan struct{}
	stop  sync.Once
	ran   atomic.Bool

	mu     sync.Mutex
	seq    uint64
	timers map[uint64]*time.Timer
}

// NewLoop creates a Loop whose inbound queue holds up to buffer items.
func NewLoop(buffer int) *Loop {
	if buffer < 1 {
		buffer = 1
	}
	return &Loop{
		queue:  make(chan func(), buffer),
		done:   make(chan struct{}),
		timers: make(map[uint64]*time.Timer),
	}
}

// Run dispatches queued work until ctx is canceled. Pending timers are
// stopped when Run returns. A Loop runs once; later calls fail with
// sentinel.ErrInvalidState.
func (l *Loop) Run(ctx context.Context) error {
	if !l.ran.CompareAndSwap(false, true) {
		return sentinel.ErrInvalidState
	}
	defer l.shutdown()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}

// Do queues fn for execution on the loop goroutine and returns without
// waiting. It must not be called from the loop goroutine when the queue may
// be full.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	select {
	case <-l.done:
		return sentinel.ErrUnavailable
	default:
	}
	select {
	case l.queue <- fn:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return sentinel.ErrUnavailable
	}
}

// Call queues fn and waits until it has run. It must not be called from the
// loop goroutine.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if err := l.Do(ctx, func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return sentinel.ErrUnavailable
	}
}

func (l *Loop) Schedule(delay time.Duration, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	id := l.seq
	l.timers[id] = time.AfterFunc(delay, func() {
		l.post(func() {
			if l.take(id) {
				fn()
			}
		})
	})
	return Handle{id: id}
}

func (l *Loop) Cancel(h Handle) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.timers[h.id]
	if !ok {
		return false
	}
	t.Stop()
	delete(l.timers, h.id)
	return true
}

func (l *Loop) Now() time.Time {
	return time.Now()
}

// take claims a fired timer. A timer canceled after it expired but before its
// callback reached the front of the queue is no longer registered, so it is
// dropped here.
func (l *Loop) take(id uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.timers[id]; !ok {
		return false
	}
	delete(l.timers, id)
	return true
}

func (l *Loop) post(fn func()) {
	select {
	case l.queue <- fn:
	case <-l.done:
	}
}

func (l *Loop) shutdown() {
	l.stop.Do(func() {
		close(l.done)
		l.mu.Lock()
		defer l.mu.Unlock()
		for id, t := range l.timers {
			t.Stop()
			delete(l.timers, id)
		}
	})
}
