package testutil

import (
	"context"
	"time"

	"onboarding/pkg/requestcontext"
)

// FixedTime is the clock origin used across tests.
var FixedTime = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

// Context returns a background context carrying requestID and FixedTime,
// as a host would set them for one interaction.
func Context(requestID string) context.Context {
	ctx := requestcontext.WithRequestID(context.Background(), requestID)
	return requestcontext.WithTime(ctx, FixedTime)
}
