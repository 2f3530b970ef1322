package steps

import (
	"time"
)

type CountdownConfig struct {
	// Start is the number of ticks to count down from.
	Start int
	Tick  time.Duration
}

func DefaultCountdownConfig() CountdownConfig {
	return CountdownConfig{Start: 60, Tick: time.Second}
}

// Countdown gates the OTP resend action. It is counting while Remaining is
// positive and ready at zero.
type Countdown struct {
	clock     Clock
	cfg       CountdownConfig
	remaining int
}

func NewCountdown(clock Clock, cfg CountdownConfig) *Countdown {
	return &Countdown{clock: clock, cfg: cfg}
}

// Start begins counting from cfg.Start.
func (c *Countdown) Start() error {
	c.clock.Cancel()
	c.remaining = c.cfg.Start
	if c.remaining <= 0 {
		c.remaining = 0
		return nil
	}
	return c.schedule()
}

// Resend restarts the countdown. It is accepted only when ready.
func (c *Countdown) Resend() bool {
	if !c.Ready() {
		return false
	}
	return c.Start() == nil
}

func (c *Countdown) Ready() bool {
	return c.remaining == 0
}

func (c *Countdown) Remaining() int {
	return c.remaining
}

func (c *Countdown) schedule() error {
	_, err := c.clock.Schedule(c.cfg.Tick, c.tick)
	return err
}

func (c *Countdown) tick() {
	c.remaining--
	if c.remaining <= 0 {
		c.remaining = 0
		return
	}
	_ = c.schedule()
}
