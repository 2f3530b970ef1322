package audit

import (
	"context"
	"time"

	id "onboarding/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with regulatory significance: the
	// application itself, the PEP declaration and every accepted consent.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers events relevant to account security, such as
	// online-banking credentials being registered.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine activity that can be sampled.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from the flow controller to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	SessionID id.SessionID
	Subject   string
	Action    string
	Purpose   string
	Decision  string
	Reason    string
	RequestID string
	// SubjectIDHash is a SHA-256 hash of the applicant's national ID number,
	// for traceability without storing the raw identifier.
	SubjectIDHash string
}

type AuditEvent string

const (
	EventSessionStarted        AuditEvent = "session_started"
	EventApplicationSubmitted  AuditEvent = "application_submitted"
	EventPEPDeclared           AuditEvent = "pep_declared"
	EventTermsAccepted         AuditEvent = "terms_accepted"
	EventCredentialsRegistered AuditEvent = "credentials_registered"
	EventOnboardingCompleted   AuditEvent = "onboarding_completed"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventApplicationSubmitted: CategoryCompliance,
	EventPEPDeclared:          CategoryCompliance,
	EventTermsAccepted:        CategoryCompliance,
	EventOnboardingCompleted:  CategoryCompliance,

	EventCredentialsRegistered: CategorySecurity,

	EventSessionStarted: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListBySession(ctx context.Context, sessionID id.SessionID) ([]Event, error)
}
