// Package types provides the shared journal domain types: fields, field
// values, entries, and field groups. These are the wire shapes exchanged
// with the journal service and the in-memory shapes the editing session
// operates on.
package types

import "time"

// FieldType is the declared type of a field. The set is open-ended:
// unknown values are tolerated and fall through to the free-text path
// when rendered.
type FieldType string

const (
	FieldNumber   FieldType = "number"
	FieldFivestar FieldType = "fivestar"
)

// KnownFieldTypes lists the types a user may pick when creating a field.
var KnownFieldTypes = []FieldType{FieldNumber, FieldFivestar}

// IsKnown reports whether t is one of the creatable field types.
func (t FieldType) IsKnown() bool {
	for _, k := range KnownFieldTypes {
		if t == k {
			return true
		}
	}
	return false
}

// Field is a typed, named slot an account can attach a value to on any
// entry. Service is the owning integration name; empty means the field
// was created by the user. Fields are immutable once created.
type Field struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"` // may contain inline markup
	Type      FieldType `json:"type"`
	Service   string    `json:"service,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// Entry is one journal record: title, markdown-flavored text, and a
// mapping from field ID to the value stored for that field. An empty ID
// means the entry has not been persisted yet.
type Entry struct {
	ID     string           `json:"id,omitempty"`
	Title  string           `json:"title"`
	Text   string           `json:"text"`
	Fields map[string]Value `json:"fields"`
}

// EntryRef is the list-view projection of an entry.
type EntryRef struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}
