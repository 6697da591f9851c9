package history

import (
	"context"
	"database/sql"

	"github.com/marait123/gnothi/internal/event"
)

// SQLiteStore implements Store over a plain database/sql handle.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// CreateTable creates the events table. Run during startup migration.
func (s *SQLiteStore) CreateTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS events (
			id          TEXT PRIMARY KEY,
			event_type  TEXT NOT NULL,
			occurred_at TIMESTAMP NOT NULL,
			entry_id    TEXT NOT NULL DEFAULT '',
			field_id    TEXT NOT NULL DEFAULT '',
			service     TEXT NOT NULL DEFAULT '',
			summary     TEXT NOT NULL,
			payload     TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_events_occurred
			ON events (occurred_at DESC);

		CREATE INDEX IF NOT EXISTS idx_events_entry_occurred
			ON events (entry_id, occurred_at DESC);
	`)
	return err
}

func (s *SQLiteStore) Append(ctx context.Context, evt event.DomainEvent) error {
	var payload any
	if evt.Payload != nil {
		payload = string(evt.Payload)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (id, event_type, occurred_at, entry_id, field_id, service, summary, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING`,
		evt.ID, evt.EventType, evt.OccurredAt, evt.EntryID, evt.FieldID, evt.Service, evt.Summary, payload)
	return err
}

func (s *SQLiteStore) List(ctx context.Context, q Query) ([]event.DomainEvent, error) {
	query := `
		SELECT id, event_type, occurred_at, entry_id, field_id, service, summary, payload
		FROM events`
	args := []any{}
	if q.EntryID != "" {
		query += ` WHERE entry_id = ?`
		args = append(args, q.EntryID)
	}
	query += ` ORDER BY occurred_at DESC LIMIT ?`
	args = append(args, clampLimit(q.Limit))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []event.DomainEvent
	for rows.Next() {
		var e event.DomainEvent
		var payload sql.NullString
		if err := rows.Scan(&e.ID, &e.EventType, &e.OccurredAt, &e.EntryID, &e.FieldID, &e.Service, &e.Summary, &payload); err != nil {
			return nil, err
		}
		if payload.Valid {
			e.Payload = []byte(payload.String)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
