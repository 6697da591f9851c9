// Package draft holds a single in-progress entry: title, text, and a
// field-to-value mapping covering every field the account knows about.
// One editing session exclusively owns one draft; nothing here is safe
// for concurrent mutation and nothing needs to be.
package draft

import "github.com/marait123/gnothi/internal/types"

// Draft is the client-side working copy of an entry.
type Draft struct {
	// EntryID is empty for a not-yet-created entry.
	EntryID string
	Title   string
	Text    string

	// values maps field ID to its current value. The key set is the
	// union of the registry's field IDs and the stored entry's keys —
	// a slot exists for every known field even when nothing has been
	// entered, so the editor can always render an input for it.
	values map[string]types.Value

	// baseline is the loaded state, kept for dirty detection.
	baseline snapshot
}

type snapshot struct {
	title  string
	text   string
	values map[string]types.Value
}

// New builds a draft by merging the field registry with an optionally
// stored entry. Every field gets an unset slot first; the stored mapping
// is then overlaid in full. Stored keys unknown to the registry are kept
// (the registry may be stale), and registry fields absent from the
// stored mapping stay unset.
func New(fields []types.Field, stored *types.Entry) *Draft {
	values := make(map[string]types.Value, len(fields))
	for _, f := range fields {
		values[f.ID] = types.Unset()
	}

	d := &Draft{values: values}
	if stored != nil {
		d.EntryID = stored.ID
		d.Title = stored.Title
		d.Text = stored.Text
		for id, v := range stored.Fields {
			values[id] = v
		}
	}

	d.baseline = snapshot{title: d.Title, text: d.Text, values: cloneValues(values)}
	return d
}

// Value returns the current value for a field ID. Unknown IDs read as
// unset.
func (d *Draft) Value(fieldID string) types.Value {
	return d.values[fieldID]
}

// Values returns a copy of the full mapping.
func (d *Draft) Values() map[string]types.Value {
	return cloneValues(d.values)
}

// SetValue replaces the value for exactly one field. The mapping is
// copied, never mutated in place, so a reader holding the previous map
// never observes a partial update.
func (d *Draft) SetValue(fieldID string, v types.Value) {
	next := cloneValues(d.values)
	next[fieldID] = v
	d.values = next
}

// SetTitle updates the draft title.
func (d *Draft) SetTitle(title string) { d.Title = title }

// SetText updates the draft text.
func (d *Draft) SetText(text string) { d.Text = text }

// Dirty reports whether the draft differs from its loaded state.
func (d *Draft) Dirty() bool {
	if d.Title != d.baseline.title || d.Text != d.baseline.text {
		return true
	}
	if len(d.values) != len(d.baseline.values) {
		return true
	}
	for id, v := range d.values {
		if !sameValue(v, d.baseline.values[id]) {
			return true
		}
	}
	return false
}

// AddFields extends the mapping with unset slots for newly created
// fields, leaving every existing value — edited or not — untouched. The
// new slots become part of the baseline: an empty slot for a brand-new
// field is not an edit.
func (d *Draft) AddFields(fields []types.Field) {
	next := cloneValues(d.values)
	for _, f := range fields {
		if _, ok := next[f.ID]; !ok {
			next[f.ID] = types.Unset()
			d.baseline.values[f.ID] = types.Unset()
		}
	}
	d.values = next
}

// Payload produces the entry shape submitted to the server: identical
// for create and update, keyed by field ID in every direction.
func (d *Draft) Payload() types.Entry {
	return types.Entry{
		ID:     d.EntryID,
		Title:  d.Title,
		Text:   d.Text,
		Fields: cloneValues(d.values),
	}
}

func cloneValues(m map[string]types.Value) map[string]types.Value {
	out := make(map[string]types.Value, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sameValue(a, b types.Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case types.KindNumber:
		return a.Number == b.Number
	case types.KindStars:
		return a.Stars == b.Stars
	case types.KindRaw:
		return string(a.Raw) == string(b.Raw)
	}
	return true
}
