// Package stats computes per-field aggregates across the journal: how
// often a field is filled in, numeric averages, star distributions. The
// numbers drive the read-only overview; nothing here mutates anything.
package stats

import (
	"context"
	"fmt"
	"strconv"

	"github.com/marait123/gnothi/internal/journal"
	"github.com/marait123/gnothi/internal/registry"
	"github.com/marait123/gnothi/internal/types"
)

// FieldStats summarizes one field's values over all entries.
type FieldStats struct {
	FieldID string          `json:"field_id"`
	Name    string          `json:"name"`
	Type    types.FieldType `json:"type"`
	Service string          `json:"service,omitempty"`

	// SetCount is the number of entries with a non-unset value.
	SetCount int `json:"set_count"`
	// Average covers star ratings and parseable numbers. Unparseable
	// values and raw payloads count toward SetCount but never average.
	Average    float64 `json:"average,omitempty"`
	HasAverage bool    `json:"has_average"`
	// StarCounts is the 0..5 rating histogram for fivestar fields.
	StarCounts []int `json:"star_counts,omitempty"`
}

// Aggregate computes stats for each field over the given entries.
// Fields keep registry order; entries without a value for a field
// simply don't count toward it.
func Aggregate(fields []types.Field, entries []types.Entry) []FieldStats {
	out := make([]FieldStats, 0, len(fields))
	for _, f := range fields {
		fs := FieldStats{FieldID: f.ID, Name: f.Name, Type: f.Type, Service: f.Service}
		if f.Type == types.FieldFivestar {
			fs.StarCounts = make([]int, 6)
		}

		var sum float64
		var numeric int
		for _, e := range entries {
			v, ok := e.Fields[f.ID]
			if !ok || v.IsUnset() {
				continue
			}
			fs.SetCount++
			switch v.Kind {
			case types.KindStars:
				if fs.StarCounts != nil {
					fs.StarCounts[v.Stars]++
				}
				sum += float64(v.Stars)
				numeric++
			case types.KindNumber:
				if n, err := strconv.ParseFloat(v.Number, 64); err == nil {
					sum += n
					numeric++
				}
			}
		}
		if numeric > 0 {
			fs.Average = sum / float64(numeric)
			fs.HasAverage = true
		}
		out = append(out, fs)
	}
	return out
}

// Aggregator reads the stores and aggregates on demand.
type Aggregator struct {
	fields  registry.Store
	entries journal.Store
}

// NewAggregator creates an Aggregator over the given stores.
func NewAggregator(fields registry.Store, entries journal.Store) *Aggregator {
	return &Aggregator{fields: fields, entries: entries}
}

// Summarize loads every field and entry and returns the aggregates.
func (a *Aggregator) Summarize(ctx context.Context) ([]FieldStats, error) {
	fields, err := a.fields.ListFields(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing fields: %w", err)
	}
	refs, err := a.entries.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	entries := make([]types.Entry, 0, len(refs))
	for _, ref := range refs {
		e, err := a.entries.GetEntry(ctx, ref.ID)
		if err != nil {
			return nil, fmt.Errorf("loading entry %s: %w", ref.ID, err)
		}
		entries = append(entries, e)
	}
	return Aggregate(fields, entries), nil
}
