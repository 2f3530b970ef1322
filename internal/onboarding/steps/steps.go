// Package steps implements the screen-local sub-machines of the onboarding
// flow. Each one runs on a Clock owned by its screen activation and reports
// completion through a callback; none of them touch the Session.
package steps

import (
	"time"

	"onboarding/pkg/platform/timer"
)

// Clock is the part of timer.Scope a sub-machine schedules on. At most one
// callback is in flight per Clock.
type Clock interface {
	Schedule(delay time.Duration, fn func()) (timer.Handle, error)
	Cancel() bool
}
