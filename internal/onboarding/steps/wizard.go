package steps

import (
	"onboarding/internal/onboarding/models"
	"onboarding/internal/onboarding/validation"
)

// FormWizard pages through the extended data form. It keeps the draft so a
// step revisited with Back is pre-filled.
type FormWizard struct {
	step  int
	draft models.ApplicationForm
}

func NewFormWizard(draft models.ApplicationForm) *FormWizard {
	return &FormWizard{step: 1, draft: draft}
}

// Step is the current 1-based step.
func (w *FormWizard) Step() int {
	return w.step
}

func (w *FormWizard) Steps() int {
	return validation.FormSteps
}

// Fraction is the share of the form reached, step/steps.
func (w *FormWizard) Fraction() float64 {
	return float64(w.step) / float64(validation.FormSteps)
}

func (w *FormWizard) Draft() models.ApplicationForm {
	return w.draft
}

// Check validates the current step of form without changing the wizard.
func (w *FormWizard) Check(form models.ApplicationForm) validation.Result {
	return validation.FormStep(w.step, form)
}

// Next stores form as the draft and moves forward when the current step is
// valid and is not the last one.
func (w *FormWizard) Next(form models.ApplicationForm) (validation.Result, bool) {
	r := w.Check(form)
	if !r.Valid || w.step >= validation.FormSteps {
		return r, false
	}
	w.draft = validation.NormalizeAmounts(form)
	w.step++
	return r, true
}

// Back moves to the previous step. It reports false on the first step,
// where back leaves the screen instead.
func (w *FormWizard) Back() bool {
	if w.step <= 1 {
		return false
	}
	w.step--
	return true
}

// Keep stores form as the draft without moving.
func (w *FormWizard) Keep(form models.ApplicationForm) {
	w.draft = validation.NormalizeAmounts(form)
}
