package main

import (
	"context"
	"fmt"
	"time"

	"onboarding/internal/onboarding/models"
	"onboarding/internal/onboarding/service"
	"onboarding/pkg/platform/timer"
	"onboarding/pkg/requestcontext"
)

// driver delivers host events to a controller on one kind of clock.
type driver interface {
	// dispatch waits until the controller accepts ev, then dispatches it.
	dispatch(ctx context.Context, ev models.Event) (service.Result, error)
}

// virtualDriver jumps the manual clock to the next due timer while the
// controller is not ready for the next event.
type virtualDriver struct {
	clock *timer.Manual
	c     *service.Controller
	limit int
}

func (d *virtualDriver) dispatch(ctx context.Context, ev models.Event) (service.Result, error) {
	for i := 0; !d.c.CanDispatch(ev); i++ {
		due, ok := d.clock.NextDue()
		if !ok || i >= d.limit {
			return service.Result{}, fmt.Errorf("%s not accepted on %s", ev.Kind(), d.c.Screen())
		}
		d.clock.Advance(due.Sub(d.clock.Now()))
	}
	return d.c.Dispatch(ctx, ev), nil
}

// loopDriver polls the controller through the loop so readiness and
// dispatch happen in the same loop turn.
type loopDriver struct {
	loop    *timer.Loop
	c       *service.Controller
	poll    time.Duration
	timeout time.Duration
}

func (d *loopDriver) dispatch(ctx context.Context, ev models.Event) (service.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	ticker := time.NewTicker(d.poll)
	defer ticker.Stop()

	for {
		var (
			res      service.Result
			accepted bool
			screen   models.Screen
		)
		err := d.loop.Call(ctx, func() {
			screen = d.c.Screen()
			if accepted = d.c.CanDispatch(ev); accepted {
				res = d.c.Dispatch(ctx, ev)
			}
		})
		if err != nil {
			return service.Result{}, fmt.Errorf("dispatch %s: %w", ev.Kind(), err)
		}
		if accepted {
			return res, nil
		}
		select {
		case <-ctx.Done():
			return service.Result{}, fmt.Errorf("%s not accepted on %s: %w", ev.Kind(), screen, ctx.Err())
		case <-ticker.C:
		}
	}
}

// play dispatches every event in order, each with its own request ID, and
// prints one line per event.
func play(ctx context.Context, d driver, script []models.Event, out func(format string, args ...any)) (service.Result, error) {
	var last service.Result
	for i, ev := range script {
		res, err := d.dispatch(requestcontext.WithRequestID(ctx, fmt.Sprintf("evt-%02d", i+1)), ev)
		if err != nil {
			return last, err
		}
		out("%-22s %-9s %s\n", ev.Kind(), res.Outcome, res.Screen)
		last = res
	}
	return last, nil
}
