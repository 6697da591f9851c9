// Package registry provides the authoritative per-account field registry:
// the ordered list of fields available to an account, user-created or
// provisioned by a service integration.
package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/marait123/gnothi/internal/types"
)

// ErrNotFound is returned when a field ID does not resolve.
var ErrNotFound = errors.New("registry: field not found")

// ValidationError reports invalid field-creation input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return "registry: " + e.Msg }

// IsValidation reports whether err is a field validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Store is the interface for reading and writing field definitions.
// ListFields order is the server-defined creation order and is stable
// across calls absent mutation.
type Store interface {
	ListFields(ctx context.Context) ([]types.Field, error)

	// CreateField stores a new field definition and returns it with its
	// assigned identity. Service is empty for user-created fields.
	CreateField(ctx context.Context, f types.Field) (types.Field, error)

	// GetField returns one field by ID, or ErrNotFound.
	GetField(ctx context.Context, id string) (types.Field, error)

	// FindByService returns the field owned by a service with the given
	// display name, or ErrNotFound. Used by providers to provision
	// idempotently.
	FindByService(ctx context.Context, service, name string) (types.Field, error)
}

// ValidateNew checks user-supplied field-creation input. Callers reject
// invalid input before any store or network round trip.
func ValidateNew(name string, ft types.FieldType) error {
	if name == "" {
		return &ValidationError{Msg: "field name must not be empty"}
	}
	if !ft.IsKnown() {
		return &ValidationError{Msg: fmt.Sprintf("unknown field type %q", ft)}
	}
	return nil
}
