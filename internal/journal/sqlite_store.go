package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marait123/gnothi/internal/types"
)

// SQLiteStore implements Store over a plain database/sql handle. The
// field-value mapping is stored as a JSON column keyed by field ID, the
// same shape the wire uses, so values round-trip exactly.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// CreateTable creates the entries table. Run during startup migration.
func (s *SQLiteStore) CreateTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS entries (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			text       TEXT NOT NULL,
			fields     TEXT NOT NULL DEFAULT '{}',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_entries_created
			ON entries (created_at DESC);
	`)
	return err
}

func (s *SQLiteStore) GetEntry(ctx context.Context, id string) (types.Entry, error) {
	var e types.Entry
	var fieldsJSON []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, text, fields FROM entries WHERE id = ?`, id).
		Scan(&e.ID, &e.Title, &e.Text, &fieldsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Entry{}, ErrNotFound
	}
	if err != nil {
		return types.Entry{}, fmt.Errorf("scanning entry: %w", err)
	}
	if err := json.Unmarshal(fieldsJSON, &e.Fields); err != nil {
		return types.Entry{}, fmt.Errorf("decoding field values: %w", err)
	}
	return e, nil
}

func (s *SQLiteStore) CreateEntry(ctx context.Context, e types.Entry) (types.Entry, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	fieldsJSON, err := marshalFields(e.Fields)
	if err != nil {
		return types.Entry{}, err
	}
	now := time.Now()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO entries (id, title, text, fields, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.Text, fieldsJSON, now, now)
	if err != nil {
		return types.Entry{}, fmt.Errorf("inserting entry: %w", err)
	}
	return e, nil
}

func (s *SQLiteStore) UpdateEntry(ctx context.Context, e types.Entry) (types.Entry, error) {
	fieldsJSON, err := marshalFields(e.Fields)
	if err != nil {
		return types.Entry{}, err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE entries SET title = ?, text = ?, fields = ?, updated_at = ?
		WHERE id = ?`,
		e.Title, e.Text, fieldsJSON, time.Now(), e.ID)
	if err != nil {
		return types.Entry{}, fmt.Errorf("updating entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.Entry{}, ErrNotFound
	}
	return e, nil
}

func (s *SQLiteStore) ListEntries(ctx context.Context) ([]types.EntryRef, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, created_at FROM entries
		ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var refs []types.EntryRef
	for rows.Next() {
		var r types.EntryRef
		if err := rows.Scan(&r.ID, &r.Title, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning entry ref: %w", err)
		}
		refs = append(refs, r)
	}
	return refs, rows.Err()
}

func (s *SQLiteStore) SetFieldValue(ctx context.Context, entryID, fieldID string, v types.Value) error {
	// Read-modify-write on the JSON column. The server opens SQLite with a
	// single connection, so this does not race with other writers.
	e, err := s.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if e.Fields == nil {
		e.Fields = make(map[string]types.Value)
	}
	e.Fields[fieldID] = v
	_, err = s.UpdateEntry(ctx, e)
	return err
}

func marshalFields(fields map[string]types.Value) ([]byte, error) {
	if fields == nil {
		fields = map[string]types.Value{}
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encoding field values: %w", err)
	}
	return b, nil
}
