package models

import (
	"time"

	id "onboarding/pkg/domain"
	dErrors "onboarding/pkg/domain-errors"
)

// Gate is a forward transition that has been passed at least once.
type Gate string

const (
	GateApplication Gate = "application"
	GateOTP         Gate = "otp"
	GatePEP         Gate = "pep"
	GateProcessing  Gate = "processing"
	GateCapture     Gate = "capture"
	GateBiometric   Gate = "biometric"
	GateTerms       Gate = "terms"
	GateBenefit     Gate = "benefit"
)

var variantGates = map[Variant][]Gate{
	VariantBase: {GateApplication, GateOTP, GateProcessing, GateBiometric, GateTerms},
	VariantExtended: {
		GateApplication, GateOTP, GatePEP, GateProcessing,
		GateCapture, GateBiometric, GateTerms, GateBenefit,
	},
}

// Gates lists the gates of v in flow order.
func (v Variant) Gates() []Gate {
	return append([]Gate(nil), variantGates[v]...)
}

// Session is the aggregate root for one onboarding attempt. It is owned and
// mutated by a single controller; everything else sees Clone copies.
// Read-only checks take a value receiver so they work on those copies.
//
// Invariants:
//   - CurrentScreen is always a screen of Variant
//   - FinancialInfo is nil in the base variant
//   - PEP is unknown until declared; once declared it never changes
//   - Credentials are set at most once, and only after every gate of the
//     variant has been passed
//   - CompletedAt is set at most once
type Session struct {
	ID            id.SessionID
	Variant       Variant
	CurrentScreen Screen
	BasicInfo     BasicInfo
	FinancialInfo *FinancialInfo
	PEP           PEPStatus
	TermsAccepted bool
	Credentials   *Credentials
	StartedAt     time.Time
	CompletedAt   *time.Time

	gates map[Gate]bool
}

func NewSession(sessionID id.SessionID, variant Variant, now time.Time) (*Session, error) {
	if sessionID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "session id cannot be nil")
	}
	if !variant.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid flow variant")
	}
	return &Session{
		ID:            sessionID,
		Variant:       variant,
		CurrentScreen: ScreenLanding,
		StartedAt:     now,
		gates:         make(map[Gate]bool),
	}, nil
}

// MoveTo changes the current screen. It touches nothing else.
func (s *Session) MoveTo(screen Screen) error {
	if !s.Variant.Includes(screen) {
		return dErrors.New(dErrors.CodeInvariantViolation, "screen "+screen.String()+" is not part of the "+s.Variant.String()+" flow")
	}
	s.CurrentScreen = screen
	return nil
}

// ApplyApplication stores the data-form payload. Re-submitting the form
// replaces the previous values.
func (s *Session) ApplyApplication(form ApplicationForm) {
	s.BasicInfo = form.Basic
	if s.Variant == VariantExtended {
		financial := form.Financial
		s.FinancialInfo = &financial
	}
}

// CanDeclarePEP checks that the PEP question belongs to this flow and has
// not been answered yet.
func (s Session) CanDeclarePEP() error {
	if s.Variant != VariantExtended {
		return dErrors.New(dErrors.CodeInvariantViolation, "pep declaration is not part of the base flow")
	}
	if s.PEP.IsDeclared() {
		return dErrors.New(dErrors.CodeInvariantViolation, "pep status already declared")
	}
	return nil
}

// ApplyPEPDeclaration records the answer.
// Must only be called after CanDeclarePEP returns nil.
func (s *Session) ApplyPEPDeclaration(status PEPStatus) {
	s.PEP = status
}

// DeclarePEP validates and applies the declaration in one call.
func (s *Session) DeclarePEP(status PEPStatus) error {
	if !status.IsDeclared() {
		return dErrors.New(dErrors.CodeInvalidInput, "pep status must be yes or no")
	}
	if err := s.CanDeclarePEP(); err != nil {
		return err
	}
	s.ApplyPEPDeclaration(status)
	return nil
}

func (s *Session) ApplyTermsAcceptance() {
	s.TermsAccepted = true
}

// PassGate records that a forward transition succeeded. Passing a gate
// again is a no-op.
func (s *Session) PassGate(g Gate) {
	if s.gates == nil {
		s.gates = make(map[Gate]bool)
	}
	s.gates[g] = true
}

func (s Session) Passed(g Gate) bool {
	return s.gates[g]
}

// MissingGates lists the gates of the variant not passed yet, in flow order.
func (s Session) MissingGates() []Gate {
	var missing []Gate
	for _, g := range variantGates[s.Variant] {
		if !s.Passed(g) {
			missing = append(missing, g)
		}
	}
	return missing
}

// CanRegisterCredentials checks the write-once credential invariant.
func (s Session) CanRegisterCredentials() error {
	if s.Variant != VariantExtended {
		return dErrors.New(dErrors.CodeInvariantViolation, "credential registration is not part of the base flow")
	}
	if s.Credentials != nil {
		return dErrors.New(dErrors.CodeInvariantViolation, "credentials already registered")
	}
	if missing := s.MissingGates(); len(missing) > 0 {
		return dErrors.New(dErrors.CodeInvariantViolation, "gate "+string(missing[0])+" not passed")
	}
	return nil
}

// ApplyCredentials stores the credentials.
// Must only be called after CanRegisterCredentials returns nil.
func (s *Session) ApplyCredentials(c Credentials) {
	s.Credentials = &c
}

func (s Session) IsCompleted() bool {
	return s.CompletedAt != nil
}

// CanComplete checks that the session sits on its terminal screen and has
// not completed before.
func (s Session) CanComplete() error {
	if s.IsCompleted() {
		return dErrors.New(dErrors.CodeInvariantViolation, "session already completed")
	}
	if s.CurrentScreen != s.Variant.TerminalScreen() {
		return dErrors.New(dErrors.CodeInvariantViolation, "session is not on its terminal screen")
	}
	return nil
}

// ApplyCompletion marks the session complete.
// Must only be called after CanComplete returns nil.
func (s *Session) ApplyCompletion(now time.Time) {
	s.CompletedAt = &now
}

// Clone returns a deep copy that shares no mutable state with s.
func (s *Session) Clone() Session {
	out := *s
	if s.FinancialInfo != nil {
		financial := *s.FinancialInfo
		out.FinancialInfo = &financial
	}
	if s.Credentials != nil {
		creds := *s.Credentials
		out.Credentials = &creds
	}
	if s.CompletedAt != nil {
		completed := *s.CompletedAt
		out.CompletedAt = &completed
	}
	out.gates = make(map[Gate]bool, len(s.gates))
	for g, ok := range s.gates {
		out.gates[g] = ok
	}
	return out
}
