package history

import (
	"context"
	"sort"
	"sync"

	"github.com/marait123/gnothi/internal/event"
)

// MemoryStore implements Store using an in-memory slice. Intended for
// demos and testing.
type MemoryStore struct {
	mu     sync.RWMutex
	events []event.DomainEvent
}

// NewMemoryStore creates a new empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, evt event.DomainEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
	return nil
}

func (s *MemoryStore) List(_ context.Context, q Query) ([]event.DomainEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []event.DomainEvent
	for _, e := range s.events {
		if q.EntryID != "" && e.EntryID != q.EntryID {
			continue
		}
		matched = append(matched, e)
	}

	// Newest first; ties keep append order.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].OccurredAt.After(matched[j].OccurredAt)
	})

	if limit := clampLimit(q.Limit); len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}
