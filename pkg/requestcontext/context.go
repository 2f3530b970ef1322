// Package requestcontext carries values scoped to one host interaction: a
// single dispatched event and everything it triggers synchronously.
//
// Hosts tag each event:
//
//	ctx = requestcontext.WithRequestID(ctx, "evt-07")
//
// The controller adds the session it belongs to, and the audit publisher
// reads both back:
//
//	ctx = requestcontext.WithSessionID(ctx, sessionID)
//	event.RequestID = requestcontext.RequestID(ctx)
//
// Tests pin the clock with WithTime.
package requestcontext

import (
	"context"
	"time"

	id "onboarding/pkg/domain"
)

type (
	requestIDKey   struct{}
	requestTimeKey struct{}
	sessionIDKey   struct{}
)

// Exported context keys for tests that need context.WithValue directly.
var (
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
	ContextKeySessionID   = sessionIDKey{}
)

// RequestID returns the host's correlation ID, or "".
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// SessionID returns the onboarding session the interaction belongs to.
// The zero SessionID means none was set.
func SessionID(ctx context.Context) id.SessionID {
	if sid, ok := ctx.Value(ContextKeySessionID).(id.SessionID); ok {
		return sid
	}
	return id.SessionID{}
}

func WithSessionID(ctx context.Context, sessionID id.SessionID) context.Context {
	return context.WithValue(ctx, ContextKeySessionID, sessionID)
}

// Now returns the interaction's pinned time, or time.Now() when none was
// injected.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime pins the interaction's time.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
