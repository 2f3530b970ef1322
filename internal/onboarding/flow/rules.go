// Package flow holds the screen transition table of the onboarding wizard
// as pure functions of (screen, event, snapshot).
package flow

import (
	"fmt"

	"onboarding/internal/onboarding/models"
	"onboarding/internal/onboarding/steps"
	"onboarding/internal/onboarding/validation"
	platformstrings "onboarding/pkg/platform/strings"
)

// Snapshot is the read-only view of session and sub-machine state the
// transition table needs for guards and branches.
type Snapshot struct {
	Variant   models.Variant
	Completed bool
	IDNumber  string
	Policy    validation.RegistrationPolicy

	// FormStep is the 1-based step of the extended data form.
	FormStep    int
	ResendReady bool
	Capture     steps.CaptureState
	Scanning    bool
	TermsAtEnd  bool
}

// Decision is the result of Next. To equals the current screen unless the
// outcome moved the flow. Gate names the gate passed by a forward move.
type Decision struct {
	Outcome Outcome
	To      models.Screen
	Gate    models.Gate
	Reason  string
}

// Next applies the transition table. It has no side effects.
func Next(from models.Screen, ev models.Event, snap Snapshot) Decision {
	if snap.Completed {
		if _, ok := ev.(models.ContinueFromSuccess); ok && from == models.ScreenAccountSuccess && snap.Variant == models.VariantBase {
			return external(from)
		}
		return ignore(from, "session completed")
	}

	switch from {
	case models.ScreenLanding:
		return landing(ev)
	case models.ScreenProductInfo:
		return productInfo(ev)
	case models.ScreenDataForm:
		return dataForm(ev, snap)
	case models.ScreenOTPValidation:
		return otpValidation(ev, snap)
	case models.ScreenPEPValidation:
		return pepValidation(ev)
	case models.ScreenOnboardingProcess:
		return onboardingProcess(ev, snap)
	case models.ScreenDocumentCapture:
		return documentCapture(ev, snap)
	case models.ScreenBiometricValidation:
		return biometricValidation(ev, snap)
	case models.ScreenTermsConditions:
		return termsConditions(ev, snap)
	case models.ScreenAccountSuccess:
		return accountSuccess(ev, snap)
	case models.ScreenUserRegistration:
		return userRegistration(ev, snap)
	default:
		return ignore(from, "unknown screen")
	}
}

func landing(ev models.Event) Decision {
	from := models.ScreenLanding
	switch ev.(type) {
	case models.OpenAccount:
		return advance(models.ScreenProductInfo, "")
	case models.Login:
		return external(from)
	}
	return unreachable(from, ev)
}

func productInfo(ev models.Event) Decision {
	from := models.ScreenProductInfo
	switch ev.(type) {
	case models.Back:
		return advance(models.ScreenLanding, "")
	case models.SelectProduct:
		return advance(models.ScreenDataForm, "")
	}
	return unreachable(from, ev)
}

func dataForm(ev models.Event, snap Snapshot) Decision {
	from := models.ScreenDataForm
	extended := snap.Variant == models.VariantExtended
	switch e := ev.(type) {
	case models.Back:
		if extended && snap.FormStep > 1 {
			return handled(from)
		}
		return advance(models.ScreenProductInfo, "")
	case models.NextFormStep:
		if !extended {
			return ignore(from, "single-page form")
		}
		if snap.FormStep >= validation.FormSteps {
			return ignore(from, "last form step")
		}
		if r := validation.FormStep(snap.FormStep, e.Form); !r.Valid {
			return reject(from, r.Reason())
		}
		return handled(from)
	case models.SubmitForm:
		if extended && snap.FormStep < validation.FormSteps {
			return reject(from, fmt.Sprintf("form step %d of %d", snap.FormStep, validation.FormSteps))
		}
		if r := validation.Application(snap.Variant, e.Form); !r.Valid {
			return reject(from, r.Reason())
		}
		return advance(models.ScreenOTPValidation, models.GateApplication)
	}
	return unreachable(from, ev)
}

func otpValidation(ev models.Event, snap Snapshot) Decision {
	from := models.ScreenOTPValidation
	switch e := ev.(type) {
	case models.VerifyOTP:
		if r := validation.OTP(e.Code); !r.Valid {
			return reject(from, r.Reason())
		}
		if snap.Variant == models.VariantExtended {
			return advance(models.ScreenPEPValidation, models.GateOTP)
		}
		return advance(models.ScreenOnboardingProcess, models.GateOTP)
	case models.ResendOTP:
		if !snap.ResendReady {
			return ignore(from, "resend countdown running")
		}
		return handled(from)
	}
	return unreachable(from, ev)
}

func pepValidation(ev models.Event) Decision {
	from := models.ScreenPEPValidation
	switch e := ev.(type) {
	case models.Back:
		return advance(models.ScreenOTPValidation, "")
	case models.DeclarePEP:
		if r := validation.PEP(e.Answer); !r.Valid {
			return reject(from, r.Reason())
		}
		return advance(models.ScreenOnboardingProcess, models.GatePEP)
	}
	return unreachable(from, ev)
}

func onboardingProcess(ev models.Event, snap Snapshot) Decision {
	from := models.ScreenOnboardingProcess
	if _, ok := ev.(models.ProgressCompleted); ok {
		if snap.Variant == models.VariantExtended {
			return advance(models.ScreenDocumentCapture, models.GateProcessing)
		}
		return advance(models.ScreenBiometricValidation, models.GateProcessing)
	}
	return unreachable(from, ev)
}

func documentCapture(ev models.Event, snap Snapshot) Decision {
	from := models.ScreenDocumentCapture
	switch ev.(type) {
	case models.Back:
		if snap.Capture == steps.CaptureConfirmed {
			return ignore(from, "document already confirmed")
		}
		return advance(models.ScreenOnboardingProcess, "")
	case models.TakePhoto:
		return whenCapture(snap, steps.CaptureCamera)
	case models.RetakePhoto, models.ConfirmPhoto:
		return whenCapture(snap, steps.CaptureCaptured)
	case models.CaptureConfirmed:
		if snap.Capture != steps.CaptureConfirmed {
			return ignore(from, "document not confirmed")
		}
		return advance(models.ScreenBiometricValidation, models.GateCapture)
	}
	return unreachable(from, ev)
}

func whenCapture(snap Snapshot, want steps.CaptureState) Decision {
	if snap.Capture != want {
		return ignore(models.ScreenDocumentCapture, "capture is "+string(snap.Capture))
	}
	return handled(models.ScreenDocumentCapture)
}

func biometricValidation(ev models.Event, snap Snapshot) Decision {
	from := models.ScreenBiometricValidation
	switch ev.(type) {
	case models.StartScan:
		if snap.Scanning {
			return ignore(from, "scan in progress")
		}
		return handled(from)
	case models.ScanCompleted:
		return advance(models.ScreenTermsConditions, models.GateBiometric)
	}
	return unreachable(from, ev)
}

func termsConditions(ev models.Event, snap Snapshot) Decision {
	from := models.ScreenTermsConditions
	switch ev.(type) {
	case models.ScrollTerms:
		return handled(from)
	case models.AcceptTerms:
		if !snap.TermsAtEnd {
			return reject(from, "terms not read to the end")
		}
		if snap.Variant == models.VariantBase {
			return Decision{Outcome: OutcomeCompleted, To: models.ScreenAccountSuccess, Gate: models.GateTerms}
		}
		return advance(models.ScreenAccountSuccess, models.GateTerms)
	}
	return unreachable(from, ev)
}

func accountSuccess(ev models.Event, snap Snapshot) Decision {
	from := models.ScreenAccountSuccess
	e, ok := ev.(models.ContinueFromSuccess)
	if !ok {
		return unreachable(from, ev)
	}
	if snap.Variant == models.VariantBase {
		return external(from)
	}
	if platformstrings.IsBlank(e.Benefit) {
		return reject(from, "no benefit selected")
	}
	return advance(models.ScreenUserRegistration, models.GateBenefit)
}

func userRegistration(ev models.Event, snap Snapshot) Decision {
	from := models.ScreenUserRegistration
	switch e := ev.(type) {
	case models.Back:
		return advance(models.ScreenAccountSuccess, "")
	case models.CompleteRegistration:
		if r := validation.Registration(e.Form, snap.Policy, snap.IDNumber); !r.Valid {
			return reject(from, r.Reason())
		}
		return Decision{Outcome: OutcomeCompleted, To: from}
	}
	return unreachable(from, ev)
}

func advance(to models.Screen, gate models.Gate) Decision {
	return Decision{Outcome: OutcomeAdvanced, To: to, Gate: gate}
}

func handled(at models.Screen) Decision {
	return Decision{Outcome: OutcomeHandled, To: at}
}

func reject(at models.Screen, reason string) Decision {
	return Decision{Outcome: OutcomeRejected, To: at, Reason: reason}
}

func ignore(at models.Screen, reason string) Decision {
	return Decision{Outcome: OutcomeIgnored, To: at, Reason: reason}
}

func external(at models.Screen) Decision {
	return Decision{Outcome: OutcomeExternal, To: at}
}

func unreachable(at models.Screen, ev models.Event) Decision {
	return ignore(at, string(ev.Kind())+" is not accepted on "+at.String())
}
