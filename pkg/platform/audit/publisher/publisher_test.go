package publisher

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "onboarding/pkg/domain"
	audit "onboarding/pkg/platform/audit"
	"onboarding/pkg/platform/audit/store/memory"
	"onboarding/pkg/requestcontext"
)

func TestPublisher_SyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	sessionID := id.NewSessionID()
	event := audit.Event{
		SessionID: sessionID,
		Action:    string(audit.EventSessionStarted),
	}

	err := pub.Emit(context.Background(), event)
	require.NoError(t, err)

	events, err := pub.List(context.Background(), sessionID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.EventSessionStarted), events[0].Action)
	assert.Equal(t, audit.CategoryOperations, events[0].Category)
}

func TestPublisher_AsyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(10))
	defer pub.Close()

	sessionID := id.NewSessionID()
	event := audit.Event{
		SessionID: sessionID,
		Action:    string(audit.EventTermsAccepted),
	}

	err := pub.Emit(context.Background(), event)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		events, err := pub.List(context.Background(), sessionID)
		return err == nil && len(events) == 1
	}, time.Second, 10*time.Millisecond)

	events, err := pub.List(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, audit.CategoryCompliance, events[0].Category)
}

func TestPublisher_AsyncDrainsOnClose(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(100))

	sessionID := id.NewSessionID()

	for range 10 {
		event := audit.Event{
			SessionID: sessionID,
			Action:    string(audit.EventSessionStarted),
		}
		err := pub.Emit(context.Background(), event)
		require.NoError(t, err)
	}

	// Close should drain all events
	pub.Close()

	events, err := store.ListBySession(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Len(t, events, 10, "all events should be drained on close")
}

func TestPublisher_EmitAfterClose(t *testing.T) {
	for name, opts := range map[string][]Option{
		"sync":  nil,
		"async": {WithAsyncBuffer(4)},
	} {
		t.Run(name, func(t *testing.T) {
			pub := NewPublisher(memory.NewInMemoryStore(), opts...)
			pub.Close()
			pub.Close()

			err := pub.Emit(context.Background(), audit.Event{Action: string(audit.EventSessionStarted)})
			assert.ErrorIs(t, err, ErrClosed)
		})
	}
}

func TestPublisher_BufferFull_DropsEvent(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(1))
	defer pub.Close()

	sessionID := id.NewSessionID()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := pub.Emit(context.Background(), audit.Event{
				SessionID: sessionID,
				Action:    string(audit.EventSessionStarted),
			})
			if err != nil {
				assert.ErrorIs(t, err, ErrBufferFull)
			}
		}()
	}
	wg.Wait()
}

func TestPublisher_SetsTimestamp(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	sessionID := id.NewSessionID()

	before := time.Now()
	err := pub.Emit(context.Background(), audit.Event{
		SessionID: sessionID,
		Action:    string(audit.EventSessionStarted),
	})
	require.NoError(t, err)
	after := time.Now()

	events, err := pub.List(context.Background(), sessionID)
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.True(t, !events[0].Timestamp.Before(before), "timestamp should be >= before")
	assert.True(t, !events[0].Timestamp.After(after), "timestamp should be <= after")
}

func TestPublisher_UsesRequestContext(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	sessionID := id.NewSessionID()
	fixed := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), fixed)
	ctx = requestcontext.WithRequestID(ctx, "req-42")
	ctx = requestcontext.WithSessionID(ctx, sessionID)

	require.NoError(t, pub.Emit(ctx, audit.Event{
		Action: string(audit.EventPEPDeclared),
	}))

	events, err := pub.List(context.Background(), sessionID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, fixed, events[0].Timestamp)
	assert.Equal(t, "req-42", events[0].RequestID)
}

func TestPublisher_PreservesExistingTimestamp(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	sessionID := id.NewSessionID()
	customTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	err := pub.Emit(context.Background(), audit.Event{
		SessionID: sessionID,
		Action:    string(audit.EventSessionStarted),
		Timestamp: customTime,
	})
	require.NoError(t, err)

	events, err := pub.List(context.Background(), sessionID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, customTime, events[0].Timestamp)
}

func TestPublisher_ContextCancellation(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(1))
	defer pub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for range 3 {
		err := pub.Emit(ctx, audit.Event{
			SessionID: id.NewSessionID(),
			Action:    string(audit.EventSessionStarted),
		})
		// Should either succeed (buffer not full) or return context error or buffer full error
		if err != nil {
			assert.True(t, err == context.Canceled || err == ErrBufferFull,
				"expected context.Canceled or buffer full error, got: %v", err)
		}
	}
}

func TestPublisher_MultipleEvents(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	sessionID := id.NewSessionID()

	events := []audit.Event{
		{SessionID: sessionID, Action: string(audit.EventSessionStarted)},
		{SessionID: sessionID, Action: string(audit.EventApplicationSubmitted)},
		{SessionID: sessionID, Action: string(audit.EventCredentialsRegistered)},
	}

	for _, event := range events {
		err := pub.Emit(context.Background(), event)
		require.NoError(t, err)
	}

	result, err := pub.List(context.Background(), sessionID)
	require.NoError(t, err)
	require.Len(t, result, 3)

	assert.Equal(t, string(audit.EventSessionStarted), result[0].Action)
	assert.Equal(t, string(audit.EventApplicationSubmitted), result[1].Action)
	assert.Equal(t, string(audit.EventCredentialsRegistered), result[2].Action)
	assert.Equal(t, audit.CategorySecurity, result[2].Category)
}

func TestPublisher_DifferentSessions(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	first := id.NewSessionID()
	second := id.NewSessionID()

	require.NoError(t, pub.Emit(context.Background(), audit.Event{
		SessionID: first,
		Action:    string(audit.EventSessionStarted),
	}))
	require.NoError(t, pub.Emit(context.Background(), audit.Event{
		SessionID: second,
		Action:    string(audit.EventTermsAccepted),
	}))

	events1, err := pub.List(context.Background(), first)
	require.NoError(t, err)
	require.Len(t, events1, 1)
	assert.Equal(t, string(audit.EventSessionStarted), events1[0].Action)

	events2, err := pub.List(context.Background(), second)
	require.NoError(t, err)
	require.Len(t, events2, 1)
	assert.Equal(t, string(audit.EventTermsAccepted), events2[0].Action)
}
