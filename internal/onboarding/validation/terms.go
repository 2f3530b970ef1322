package validation

import (
	"math"

	"onboarding/internal/onboarding/models"
)

// EndTolerance is how close, in pixels, the viewport must get to the end of
// the terms text.
const EndTolerance = 10.0

// AtEnd reports whether the viewport is within EndTolerance of the end.
func AtEnd(p models.ScrollPosition) bool {
	return math.Abs(p.ScrollHeight-p.ClientHeight-p.ScrollTop) < EndTolerance
}

// ScrollLatch tracks whether the terms have been read to the end. Once set
// it stays set, even if the user scrolls back up.
type ScrollLatch struct {
	reached bool
}

// Observe records a scroll position and reports the latch state.
func (l *ScrollLatch) Observe(p models.ScrollPosition) bool {
	if AtEnd(p) {
		l.reached = true
	}
	return l.reached
}

func (l *ScrollLatch) Reached() bool {
	return l.reached
}
