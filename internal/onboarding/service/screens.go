package service

import (
	"context"
	"time"

	"onboarding/internal/onboarding/models"
	"onboarding/internal/onboarding/steps"
	"onboarding/internal/onboarding/validation"
	"onboarding/pkg/platform/timer"
)

// activation is the private state of one visit to one screen. It is
// discarded on the next move; its scope takes every pending timer with it.
type activation struct {
	screen models.Screen
	since  time.Time
	scope  *timer.Scope

	wizard    *steps.FormWizard
	countdown *steps.Countdown
	progress  *steps.Progress
	capture   *steps.Capture
	scan      *steps.Scan
	terms     validation.ScrollLatch
}

func (c *Controller) activate(screen models.Screen) {
	a := &activation{
		screen: screen,
		since:  c.sched.Now(),
		scope:  timer.NewScope(c.sched, timer.WithStaleHook(c.stale)),
	}
	c.active = a

	switch screen {
	case models.ScreenDataForm:
		if c.session.Variant == models.VariantExtended {
			a.wizard = steps.NewFormWizard(c.draft)
		}
	case models.ScreenOTPValidation:
		a.countdown = steps.NewCountdown(a.scope, c.timings.Countdown)
		if err := a.countdown.Start(); err != nil {
			c.logError(context.Background(), "failed to start resend countdown", err)
		}
	case models.ScreenOnboardingProcess:
		a.progress = steps.NewProgress(a.scope, c.timings.Progress, c.guard(a, func() {
			c.raise(models.ProgressCompleted{})
		}))
		if err := a.progress.Start(); err != nil {
			c.logError(context.Background(), "failed to start progress", err)
		}
	case models.ScreenDocumentCapture:
		a.capture = steps.NewCapture(a.scope, c.timings.Capture, c.guard(a, func() {
			c.raise(models.CaptureConfirmed{})
		}))
	case models.ScreenBiometricValidation:
		a.scan = steps.NewScan(a.scope, c.timings.Scan, c.guard(a, func() {
			c.raise(models.ScanCompleted{})
		}))
	}
}

func (c *Controller) deactivate() {
	if c.active == nil {
		return
	}
	if c.active.wizard != nil {
		c.draft = c.active.wizard.Draft()
	}
	c.active.scope.Close()
	c.active = nil
}

// keepDraft holds on to a rejected form so the host re-renders what was
// typed instead of the last accepted step.
func (c *Controller) keepDraft(ev models.Event) {
	if c.active == nil || c.active.wizard == nil {
		return
	}
	switch e := ev.(type) {
	case models.NextFormStep:
		c.active.wizard.Keep(e.Form)
	case models.SubmitForm:
		c.active.wizard.Keep(e.Form)
	}
}

// guard wraps a sub-machine completion so it only takes effect while a is
// still the current activation of its screen.
func (c *Controller) guard(a *activation, fn func()) func() {
	return func() {
		if c.active != a || c.session.CurrentScreen != a.screen {
			c.stale()
			return
		}
		fn()
	}
}

// apply routes a screen-local event to the current sub-machine.
func (c *Controller) apply(ev models.Event) bool {
	a := c.active
	if a == nil {
		return false
	}
	switch e := ev.(type) {
	case models.Back:
		return a.wizard != nil && a.wizard.Back()
	case models.NextFormStep:
		if a.wizard == nil {
			return false
		}
		_, ok := a.wizard.Next(e.Form)
		return ok
	case models.ResendOTP:
		return a.countdown != nil && a.countdown.Resend()
	case models.TakePhoto:
		return a.capture != nil && a.capture.Take()
	case models.RetakePhoto:
		return a.capture != nil && a.capture.Retake()
	case models.ConfirmPhoto:
		return a.capture != nil && a.capture.Confirm()
	case models.StartScan:
		return a.scan != nil && a.scan.Start()
	case models.ScrollTerms:
		a.terms.Observe(e.Position)
		return true
	}
	return false
}
