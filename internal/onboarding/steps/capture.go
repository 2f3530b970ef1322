package steps

import (
	"time"
)

type CaptureState string

const (
	CaptureCamera     CaptureState = "camera"
	CaptureCapturing  CaptureState = "capturing"
	CaptureCaptured   CaptureState = "captured"
	CaptureConfirming CaptureState = "confirming"
	CaptureConfirmed  CaptureState = "confirmed"
)

type CaptureConfig struct {
	CaptureDelay time.Duration
	ConfirmDelay time.Duration
}

func DefaultCaptureConfig() CaptureConfig {
	return CaptureConfig{CaptureDelay: 2 * time.Second, ConfirmDelay: 1500 * time.Millisecond}
}

// Capture is the document photo cycle:
//
//	camera --take--> capturing --timer--> captured
//	captured --retake--> camera
//	captured --confirm--> confirming --timer--> confirmed
//
// Reaching confirmed fires onConfirmed once.
type Capture struct {
	clock       Clock
	cfg         CaptureConfig
	onConfirmed func()
	state       CaptureState
}

func NewCapture(clock Clock, cfg CaptureConfig, onConfirmed func()) *Capture {
	return &Capture{clock: clock, cfg: cfg, onConfirmed: onConfirmed, state: CaptureCamera}
}

func (c *Capture) State() CaptureState {
	return c.state
}

// CanGoBack reports whether the screen still allows back navigation.
func (c *Capture) CanGoBack() bool {
	return c.state != CaptureConfirmed
}

func (c *Capture) Take() bool {
	if c.state != CaptureCamera {
		return false
	}
	if _, err := c.clock.Schedule(c.cfg.CaptureDelay, c.captured); err != nil {
		return false
	}
	c.state = CaptureCapturing
	return true
}

func (c *Capture) Retake() bool {
	if c.state != CaptureCaptured {
		return false
	}
	c.state = CaptureCamera
	return true
}

func (c *Capture) Confirm() bool {
	if c.state != CaptureCaptured {
		return false
	}
	if _, err := c.clock.Schedule(c.cfg.ConfirmDelay, c.confirmed); err != nil {
		return false
	}
	c.state = CaptureConfirming
	return true
}

func (c *Capture) captured() {
	if c.state == CaptureCapturing {
		c.state = CaptureCaptured
	}
}

func (c *Capture) confirmed() {
	if c.state != CaptureConfirming {
		return
	}
	c.state = CaptureConfirmed
	if c.onConfirmed != nil {
		c.onConfirmed()
	}
}
