package journal

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/marait123/gnothi/internal/types"
)

// MemoryStore implements Store using an in-memory map.
// Intended for demos and testing — no SQLite required.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]storedEntry
}

type storedEntry struct {
	entry     types.Entry
	createdAt time.Time
}

// NewMemoryStore creates a new empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]storedEntry)}
}

func (s *MemoryStore) GetEntry(_ context.Context, id string) (types.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.entries[id]
	if !ok {
		return types.Entry{}, ErrNotFound
	}
	return cloneEntry(st.entry), nil
}

func (s *MemoryStore) CreateEntry(_ context.Context, e types.Entry) (types.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	s.entries[e.ID] = storedEntry{entry: cloneEntry(e), createdAt: time.Now()}
	return e, nil
}

func (s *MemoryStore) UpdateEntry(_ context.Context, e types.Entry) (types.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.entries[e.ID]
	if !ok {
		return types.Entry{}, ErrNotFound
	}
	st.entry = cloneEntry(e)
	s.entries[e.ID] = st
	return e, nil
}

func (s *MemoryStore) ListEntries(_ context.Context) ([]types.EntryRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	refs := make([]types.EntryRef, 0, len(s.entries))
	for id, st := range s.entries {
		refs = append(refs, types.EntryRef{ID: id, Title: st.entry.Title, CreatedAt: st.createdAt})
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].CreatedAt.Equal(refs[j].CreatedAt) {
			return refs[i].ID < refs[j].ID
		}
		return refs[i].CreatedAt.After(refs[j].CreatedAt)
	})
	return refs, nil
}

func (s *MemoryStore) SetFieldValue(_ context.Context, entryID, fieldID string, v types.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.entries[entryID]
	if !ok {
		return ErrNotFound
	}
	e := cloneEntry(st.entry)
	if e.Fields == nil {
		e.Fields = make(map[string]types.Value)
	}
	e.Fields[fieldID] = v
	st.entry = e
	s.entries[entryID] = st
	return nil
}

func cloneEntry(e types.Entry) types.Entry {
	out := e
	if e.Fields != nil {
		out.Fields = make(map[string]types.Value, len(e.Fields))
		for k, v := range e.Fields {
			out.Fields[k] = v
		}
	}
	return out
}
