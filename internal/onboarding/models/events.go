package models

// EventKind names an event for logging, metrics and table lookups.
type EventKind string

const (
	KindOpenAccount          EventKind = "open-account"
	KindLogin                EventKind = "login"
	KindBack                 EventKind = "back"
	KindSelectProduct        EventKind = "select-product"
	KindNextFormStep         EventKind = "next-form-step"
	KindSubmitForm           EventKind = "submit-form"
	KindVerifyOTP            EventKind = "verify-otp"
	KindResendOTP            EventKind = "resend-otp"
	KindDeclarePEP           EventKind = "declare-pep"
	KindTakePhoto            EventKind = "take-photo"
	KindRetakePhoto          EventKind = "retake-photo"
	KindConfirmPhoto         EventKind = "confirm-photo"
	KindStartScan            EventKind = "start-scan"
	KindScrollTerms          EventKind = "scroll-terms"
	KindAcceptTerms          EventKind = "accept-terms"
	KindContinueFromSuccess  EventKind = "continue-from-success"
	KindCompleteRegistration EventKind = "complete-registration"

	KindProgressCompleted EventKind = "progress-completed"
	KindCaptureConfirmed  EventKind = "capture-confirmed"
	KindScanCompleted     EventKind = "scan-completed"
)

// Event is a discrete input to the flow controller. Screens submit complete
// payloads; they never hold a reference to the Session.
type Event interface {
	Kind() EventKind
}

// AutoEvent is raised by a screen's sub-machine rather than by the user.
type AutoEvent interface {
	Event
	auto()
}

// IsAuto reports whether ev is only ever raised internally.
func IsAuto(ev Event) bool {
	_, ok := ev.(AutoEvent)
	return ok
}

type OpenAccount struct{}

type Login struct{}

type Back struct{}

type SelectProduct struct{}

// NextFormStep advances the extended data form by one step, carrying the
// draft collected so far.
type NextFormStep struct {
	Form ApplicationForm
}

// SubmitForm is the data-form "continue" action.
type SubmitForm struct {
	Form ApplicationForm
}

type VerifyOTP struct {
	Code string
}

type ResendOTP struct{}

// DeclarePEP carries the selected radio value, "yes" or "no".
type DeclarePEP struct {
	Answer string
}

type TakePhoto struct{}

type RetakePhoto struct{}

type ConfirmPhoto struct{}

type StartScan struct{}

// ScrollTerms reports the terms viewport geometry after a scroll.
type ScrollTerms struct {
	Position ScrollPosition
}

type AcceptTerms struct{}

// ContinueFromSuccess leaves account-success. Benefit is only required in
// the extended variant.
type ContinueFromSuccess struct {
	Benefit string
}

type CompleteRegistration struct {
	Form RegistrationForm
}

type ProgressCompleted struct{}

type CaptureConfirmed struct{}

type ScanCompleted struct{}

func (OpenAccount) Kind() EventKind          { return KindOpenAccount }
func (Login) Kind() EventKind                { return KindLogin }
func (Back) Kind() EventKind                 { return KindBack }
func (SelectProduct) Kind() EventKind        { return KindSelectProduct }
func (NextFormStep) Kind() EventKind         { return KindNextFormStep }
func (SubmitForm) Kind() EventKind           { return KindSubmitForm }
func (VerifyOTP) Kind() EventKind            { return KindVerifyOTP }
func (ResendOTP) Kind() EventKind            { return KindResendOTP }
func (DeclarePEP) Kind() EventKind           { return KindDeclarePEP }
func (TakePhoto) Kind() EventKind            { return KindTakePhoto }
func (RetakePhoto) Kind() EventKind          { return KindRetakePhoto }
func (ConfirmPhoto) Kind() EventKind         { return KindConfirmPhoto }
func (StartScan) Kind() EventKind            { return KindStartScan }
func (ScrollTerms) Kind() EventKind          { return KindScrollTerms }
func (AcceptTerms) Kind() EventKind          { return KindAcceptTerms }
func (ContinueFromSuccess) Kind() EventKind  { return KindContinueFromSuccess }
func (CompleteRegistration) Kind() EventKind { return KindCompleteRegistration }
func (ProgressCompleted) Kind() EventKind    { return KindProgressCompleted }
func (CaptureConfirmed) Kind() EventKind     { return KindCaptureConfirmed }
func (ScanCompleted) Kind() EventKind        { return KindScanCompleted }

func (ProgressCompleted) auto() {}
func (CaptureConfirmed) auto()  {}
func (ScanCompleted) auto()     {}

// ScrollPosition mirrors the DOM scroll metrics of the terms container.
type ScrollPosition struct {
	ScrollTop    float64
	ScrollHeight float64
	ClientHeight float64
}
