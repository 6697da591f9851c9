// Package provider contains the external service integrations that
// provision service-owned fields and push their values onto entries.
// A provider's fields are read-only in the editor; sync is the only way
// their values change.
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/marait123/gnothi/internal/journal"
	"github.com/marait123/gnothi/internal/registry"
	"github.com/marait123/gnothi/internal/types"
)

// ErrUnknownService is returned when no provider is registered under the
// requested name.
var ErrUnknownService = errors.New("provider: unknown service")

// Provider syncs one external service's fields onto a persisted entry.
type Provider interface {
	// Name is the owning-service marker stored on provisioned fields and
	// used as the sync route segment.
	Name() string

	// Sync fetches current values from the external service, provisions
	// any missing service-owned fields, and writes values onto the entry.
	// Returns the number of field values written. A partial failure may
	// leave some fields provisioned or written; callers reload either way.
	Sync(ctx context.Context, entryID string) (int, error)
}

// Registry holds the configured providers, keyed by service name.
type Registry struct {
	providers map[string]Provider
	order     []string
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a provider. Registration order is preserved for route
// mounting.
func (r *Registry) Register(p Provider) {
	if _, ok := r.providers[p.Name()]; !ok {
		r.order = append(r.order, p.Name())
	}
	r.providers[p.Name()] = p
}

// Get returns the provider for a service name.
func (r *Registry) Get(service string) (Provider, error) {
	p, ok := r.providers[service]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownService, service)
	}
	return p, nil
}

// Names returns the registered service names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// ensureField finds or provisions a service-owned field definition.
func ensureField(ctx context.Context, fields registry.Store, service, name string, ft types.FieldType) (types.Field, error) {
	f, err := fields.FindByService(ctx, service, name)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, registry.ErrNotFound) {
		return types.Field{}, err
	}
	return fields.CreateField(ctx, types.Field{Name: name, Type: ft, Service: service})
}

// writeValues provisions fields and writes their values onto the entry,
// stopping at the first store error.
func writeValues(ctx context.Context, fields registry.Store, entries journal.Store, service, entryID string, values []FieldValue) (int, error) {
	written := 0
	for _, fv := range values {
		f, err := ensureField(ctx, fields, service, fv.Name, fv.Type)
		if err != nil {
			return written, fmt.Errorf("provisioning %s field %q: %w", service, fv.Name, err)
		}
		if err := entries.SetFieldValue(ctx, entryID, f.ID, fv.Value); err != nil {
			return written, fmt.Errorf("writing %s value for %q: %w", service, fv.Name, err)
		}
		written++
	}
	return written, nil
}

// FieldValue is one external datum: the field it belongs to (by service
// and display name) and the value to store.
type FieldValue struct {
	Name  string
	Type  types.FieldType
	Value types.Value
}
