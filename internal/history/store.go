// Package history keeps the queryable record of domain events: every
// field creation, entry save, and service sync. The bus feeds it; the
// /activity endpoint reads it.
package history

import (
	"context"

	"github.com/marait123/gnothi/internal/event"
)

// DefaultLimit caps a query that asks for no explicit limit.
const DefaultLimit = 50

// MaxLimit is the hard ceiling on a single query.
const MaxLimit = 500

// Query filters a history read. Zero values mean "no filter".
type Query struct {
	// EntryID restricts results to events touching one entry.
	EntryID string
	// Limit caps the result size; 0 selects DefaultLimit.
	Limit int
}

// Store reads and writes the event history, newest first.
type Store interface {
	Append(ctx context.Context, evt event.DomainEvent) error
	List(ctx context.Context, q Query) ([]event.DomainEvent, error)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Consumer appends every bus event to a Store. Append failures are
// surfaced to the bus, which logs and drops them; history never fails
// the mutation that produced the event.
type Consumer struct {
	store Store
}

// NewConsumer creates a bus handler writing into store.
func NewConsumer(store Store) *Consumer {
	return &Consumer{store: store}
}

func (c *Consumer) HandleEvent(ctx context.Context, evt event.DomainEvent) error {
	return c.store.Append(ctx, evt)
}
