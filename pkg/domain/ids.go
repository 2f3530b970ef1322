package domain

import (
	"github.com/google/uuid"

	dErrors "onboarding/pkg/domain-errors"
)

// SessionID identifies one onboarding attempt. It is a distinct type so it
// cannot be confused with other UUID-backed identifiers at compile time.
type SessionID uuid.UUID

// NewSessionID returns a random, non-nil session identifier.
func NewSessionID() SessionID {
	return SessionID(uuid.New())
}

// ParseSessionID constructs a SessionID from external input.
//
// Errors: returns CodeInvalidInput when the value is empty, malformed, or the
// nil UUID.
func ParseSessionID(s string) (SessionID, error) {
	u, err := parseUUID(s, "session id")
	if err != nil {
		return SessionID{}, err
	}
	return SessionID(u), nil
}

// String returns the canonical UUID form.
func (id SessionID) String() string {
	return uuid.UUID(id).String()
}

// IsNil reports whether the id is the zero value.
func (id SessionID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return u, nil
}
