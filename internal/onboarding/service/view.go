package service

import (
	"onboarding/internal/onboarding/models"
	"onboarding/internal/onboarding/steps"
	"onboarding/internal/onboarding/validation"
	"onboarding/pkg/email"
)

// View is the current screen plus the data the host needs to render it.
// Exactly one of the screen sections is set, matching Screen, except for
// screens that need none.
type View struct {
	SessionID string
	Variant   models.Variant
	Screen    models.Screen
	CanGoBack bool
	Completed bool
	// Passed lists the gates cleared so far, in flow order.
	Passed []models.Gate

	Form         *FormView
	OTP          *OTPView
	Progress     *ProgressView
	Capture      *CaptureView
	Scan         *ScanView
	Terms        *TermsView
	Success      *SuccessView
	Registration *RegistrationView
}

type FormView struct {
	Step     int
	Steps    int
	Fraction float64
	// Draft pre-fills the form when a screen is re-entered.
	Draft models.ApplicationForm
	// NetWorth is assets minus liabilities of the draft, empty until both
	// amounts are filled in.
	NetWorth string
}

type OTPView struct {
	MaskedEmail string
	Phone       string
	Remaining   int
	CanResend   bool
}

type ProgressView struct {
	Percent int
	Phases  []steps.Phase
}

type CaptureView struct {
	State         steps.CaptureState
	DocumentLabel string
}

type ScanView struct {
	Scanning bool
}

type TermsView struct {
	ReachedEnd bool
}

type SuccessView struct {
	DisplayName     string
	AccountNumber   string
	RequiresBenefit bool
}

type RegistrationView struct {
	EnforcesIDNumberRule bool
	Registered           bool
}

// RegistrationChecks are the live per-rule indicators of the registration form.
type RegistrationChecks struct {
	Username            map[string]bool
	Password            map[string]bool
	ConfirmationMatches bool
}

// View renders the current state for the host.
func (c *Controller) View() View {
	s := c.session
	v := View{
		SessionID: c.sessionID.String(),
		Variant:   s.Variant,
		Screen:    s.CurrentScreen,
		CanGoBack: c.CanDispatch(models.Back{}),
		Completed: s.IsCompleted(),
	}
	for _, g := range s.Variant.Gates() {
		if s.Passed(g) {
			v.Passed = append(v.Passed, g)
		}
	}
	a := c.active

	switch s.CurrentScreen {
	case models.ScreenDataForm:
		fv := &FormView{Step: 1, Steps: 1, Fraction: 1, Draft: c.draft}
		if a != nil && a.wizard != nil {
			fv.Step = a.wizard.Step()
			fv.Steps = a.wizard.Steps()
			fv.Fraction = a.wizard.Fraction()
			fv.Draft = a.wizard.Draft()
		}
		if worth, err := validation.NetWorth(fv.Draft.Financial); err == nil {
			fv.NetWorth = validation.FormatDecimal(worth)
		}
		v.Form = fv
	case models.ScreenOTPValidation:
		ov := &OTPView{
			MaskedEmail: email.Mask(s.BasicInfo.Email),
			Phone:       models.FormatPhone(s.BasicInfo.Phone),
		}
		if a != nil && a.countdown != nil {
			ov.Remaining = a.countdown.Remaining()
			ov.CanResend = a.countdown.Ready()
		}
		v.OTP = ov
	case models.ScreenOnboardingProcess:
		pv := &ProgressView{}
		if a != nil && a.progress != nil {
			pv.Percent = a.progress.Value()
			pv.Phases = a.progress.Phases()
		}
		v.Progress = pv
	case models.ScreenDocumentCapture:
		cv := &CaptureView{State: steps.CaptureCamera, DocumentLabel: s.BasicInfo.DocumentType.Label()}
		if a != nil && a.capture != nil {
			cv.State = a.capture.State()
		}
		v.Capture = cv
	case models.ScreenBiometricValidation:
		v.Scan = &ScanView{Scanning: a != nil && a.scan != nil && a.scan.Scanning()}
	case models.ScreenTermsConditions:
		v.Terms = &TermsView{ReachedEnd: a != nil && a.terms.Reached()}
	case models.ScreenAccountSuccess:
		v.Success = &SuccessView{
			DisplayName:     s.BasicInfo.DisplayName(),
			AccountNumber:   c.accountNumber,
			RequiresBenefit: s.Variant == models.VariantExtended,
		}
	case models.ScreenUserRegistration:
		v.Registration = &RegistrationView{
			EnforcesIDNumberRule: c.policy.ForbidIDNumberUsername,
			Registered:           s.Credentials != nil,
		}
	}
	return v
}

// CheckRegistration evaluates the live registration rules for a draft form
// without submitting it.
func (c *Controller) CheckRegistration(form models.RegistrationForm) RegistrationChecks {
	return RegistrationChecks{
		Username:            validation.UsernameChecks(form.Username, c.policy, c.session.BasicInfo.IDNumber),
		Password:            validation.PasswordChecks(form.Password),
		ConfirmationMatches: validation.ConfirmationMatches(form.Password, form.Confirmation),
	}
}
