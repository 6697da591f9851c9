// Package event provides domain event recording for the journal handlers.
// Every mutation — field creation, entry create/update, service sync —
// produces one event, published to the in-process bus for downstream
// consumers (logging, the live WebSocket feed).
package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marait123/gnothi/internal/types"
)

// DomainEvent carries the canonical shape of every journal event.
type DomainEvent struct {
	ID         string          `json:"id"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	EntryID    string          `json:"entry_id,omitempty"`
	FieldID    string          `json:"field_id,omitempty"`
	Service    string          `json:"service,omitempty"`
	Summary    string          `json:"summary"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

func newID() string { return uuid.New().String() }

func mustJSON(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

// FieldCreatedPayload carries event-specific data for field_created.
type FieldCreatedPayload struct {
	FieldID string          `json:"field_id"`
	Name    string          `json:"name"`
	Type    types.FieldType `json:"type"`
	Service string          `json:"service,omitempty"`
}

func NewFieldCreated(f types.Field) DomainEvent {
	return DomainEvent{
		ID:         newID(),
		EventType:  "field_created",
		OccurredAt: time.Now(),
		FieldID:    f.ID,
		Service:    f.Service,
		Summary:    fmt.Sprintf("Field %q (%s) created", f.Name, f.Type),
		Payload:    mustJSON(FieldCreatedPayload{FieldID: f.ID, Name: f.Name, Type: f.Type, Service: f.Service}),
	}
}

// EntrySavedPayload carries event-specific data for entry_created and
// entry_updated.
type EntrySavedPayload struct {
	EntryID    string `json:"entry_id"`
	Title      string `json:"title"`
	FieldCount int    `json:"field_count"`
}

func NewEntryCreated(e types.Entry) DomainEvent {
	return DomainEvent{
		ID:         newID(),
		EventType:  "entry_created",
		OccurredAt: time.Now(),
		EntryID:    e.ID,
		Summary:    fmt.Sprintf("Entry %q created", e.Title),
		Payload:    mustJSON(EntrySavedPayload{EntryID: e.ID, Title: e.Title, FieldCount: len(e.Fields)}),
	}
}

func NewEntryUpdated(e types.Entry) DomainEvent {
	return DomainEvent{
		ID:         newID(),
		EventType:  "entry_updated",
		OccurredAt: time.Now(),
		EntryID:    e.ID,
		Summary:    fmt.Sprintf("Entry %q updated", e.Title),
		Payload:    mustJSON(EntrySavedPayload{EntryID: e.ID, Title: e.Title, FieldCount: len(e.Fields)}),
	}
}

// ServiceSyncedPayload carries event-specific data for service_synced.
type ServiceSyncedPayload struct {
	Service       string `json:"service"`
	EntryID       string `json:"entry_id"`
	FieldsWritten int    `json:"fields_written"`
	Failed        bool   `json:"failed,omitempty"`
}

func NewServiceSynced(service, entryID string, fieldsWritten int, failed bool) DomainEvent {
	summary := fmt.Sprintf("Synced %s onto entry %s (%d fields)", service, shortID(entryID), fieldsWritten)
	if failed {
		summary = fmt.Sprintf("Sync of %s onto entry %s failed", service, shortID(entryID))
	}
	return DomainEvent{
		ID:         newID(),
		EventType:  "service_synced",
		OccurredAt: time.Now(),
		EntryID:    entryID,
		Service:    service,
		Summary:    summary,
		Payload:    mustJSON(ServiceSyncedPayload{Service: service, EntryID: entryID, FieldsWritten: fieldsWritten, Failed: failed}),
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
