package memory

import (
	"context"
	"sync"

	id "onboarding/pkg/domain"
	audit "onboarding/pkg/platform/audit"
)

type InMemoryStore struct {
	mu     sync.RWMutex
	events map[id.SessionID][]audit.Event
	order  []id.SessionID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[id.SessionID][]audit.Event)}
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, seen := s.events[event.SessionID]; !seen {
		s.order = append(s.order, event.SessionID)
	}
	s.events[event.SessionID] = append(s.events[event.SessionID], event)
	return nil
}

func (s *InMemoryStore) ListBySession(_ context.Context, sessionID id.SessionID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events[sessionID]...), nil
}

// ListAll returns every event, grouped by session in first-seen order.
func (s *InMemoryStore) ListAll(_ context.Context) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var all []audit.Event
	for _, sessionID := range s.order {
		all = append(all, s.events[sessionID]...)
	}
	return all, nil
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[id.SessionID][]audit.Event)
	s.order = nil
}
