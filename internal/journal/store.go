// Package journal provides persistence for journal entries. The server is
// the sole source of truth for an entry after submission; drafts live only
// in the editing session.
package journal

import (
	"context"
	"errors"

	"github.com/marait123/gnothi/internal/types"
)

// ErrNotFound is returned when an entry ID does not resolve.
var ErrNotFound = errors.New("journal: entry not found")

// Store is the interface for reading and writing entries.
type Store interface {
	// GetEntry returns one entry with its full field-value mapping, or
	// ErrNotFound.
	GetEntry(ctx context.Context, id string) (types.Entry, error)

	// CreateEntry stores a new entry and returns its assigned identity.
	CreateEntry(ctx context.Context, e types.Entry) (types.Entry, error)

	// UpdateEntry replaces title, text, and the field-value mapping of an
	// existing entry. Returns ErrNotFound for an unknown ID.
	UpdateEntry(ctx context.Context, e types.Entry) (types.Entry, error)

	// ListEntries returns entry references, newest first.
	ListEntries(ctx context.Context) ([]types.EntryRef, error)

	// SetFieldValue writes a single field value on an entry without
	// touching title or text. Used by service sync.
	SetFieldValue(ctx context.Context, entryID, fieldID string, v types.Value) error
}
