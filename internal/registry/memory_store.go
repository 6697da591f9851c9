package registry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/marait123/gnothi/internal/types"
)

// MemoryStore implements Store using an in-memory slice.
// Intended for demos and testing — no SQLite required.
type MemoryStore struct {
	mu     sync.RWMutex
	fields []types.Field
}

// NewMemoryStore creates a new empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) ListFields(_ context.Context) ([]types.Field, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Field, len(s.fields))
	copy(out, s.fields)
	return out, nil
}

func (s *MemoryStore) CreateField(_ context.Context, f types.Field) (types.Field, error) {
	if err := validateStored(f); err != nil {
		return types.Field{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
	s.fields = append(s.fields, f)
	return f, nil
}

func (s *MemoryStore) GetField(_ context.Context, id string) (types.Field, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.fields {
		if f.ID == id {
			return f, nil
		}
	}
	return types.Field{}, ErrNotFound
}

func (s *MemoryStore) FindByService(_ context.Context, service, name string) (types.Field, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.fields {
		if f.Service == service && f.Name == name {
			return f, nil
		}
	}
	return types.Field{}, ErrNotFound
}

// validateStored guards every write path, including service provisioning.
// Service-owned fields may carry types outside the user-creatable set, so
// only the name is checked here.
func validateStored(f types.Field) error {
	if f.Name == "" {
		return &ValidationError{Msg: "field name must not be empty"}
	}
	return nil
}
