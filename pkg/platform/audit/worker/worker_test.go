package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "onboarding/pkg/domain"
	audit "onboarding/pkg/platform/audit"
	"onboarding/pkg/platform/audit/store/memory"
)

type failingStore struct{}

func (failingStore) Append(context.Context, audit.Event) error {
	return errors.New("disk full")
}

func (failingStore) ListBySession(context.Context, id.SessionID) ([]audit.Event, error) {
	return nil, nil
}

func TestWorker_DrainsUntilInboxClosed(t *testing.T) {
	store := memory.NewInMemoryStore()
	inbox := make(chan audit.Event, 3)
	sessionID := id.NewSessionID()
	for range 3 {
		inbox <- audit.Event{SessionID: sessionID, Action: string(audit.EventSessionStarted)}
	}
	close(inbox)

	err := NewWorker(store, inbox).Run(context.Background())
	require.NoError(t, err)

	events, err := store.ListBySession(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestWorker_StopsOnContextCancel(t *testing.T) {
	inbox := make(chan audit.Event)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewWorker(memory.NewInMemoryStore(), inbox).Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestWorker_StoreFailure(t *testing.T) {
	t.Run("stops without an error handler", func(t *testing.T) {
		inbox := make(chan audit.Event, 1)
		inbox <- audit.Event{Action: string(audit.EventSessionStarted)}
		close(inbox)

		err := NewWorker(failingStore{}, inbox).Run(context.Background())
		assert.EqualError(t, err, "disk full")
	})

	t.Run("reports and continues with an error handler", func(t *testing.T) {
		inbox := make(chan audit.Event, 2)
		inbox <- audit.Event{Action: string(audit.EventSessionStarted)}
		inbox <- audit.Event{Action: string(audit.EventTermsAccepted)}
		close(inbox)

		var failed []string
		w := NewWorker(failingStore{}, inbox, WithErrorHandler(func(e audit.Event, _ error) {
			failed = append(failed, e.Action)
		}))
		require.NoError(t, w.Run(context.Background()))
		assert.Equal(t, []string{string(audit.EventSessionStarted), string(audit.EventTermsAccepted)}, failed)
	})
}
