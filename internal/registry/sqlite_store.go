package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marait123/gnothi/internal/types"
)

// SQLiteStore implements Store over a plain database/sql handle.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// CreateTable creates the fields table. Run during startup migration.
func (s *SQLiteStore) CreateTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS fields (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			type       TEXT NOT NULL,
			service    TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_fields_service_name
			ON fields (service, name);
	`)
	return err
}

func (s *SQLiteStore) ListFields(ctx context.Context) ([]types.Field, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, type, service, created_at
		FROM fields
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing fields: %w", err)
	}
	defer rows.Close()

	var fields []types.Field
	for rows.Next() {
		var f types.Field
		if err := rows.Scan(&f.ID, &f.Name, &f.Type, &f.Service, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning field: %w", err)
		}
		fields = append(fields, f)
	}
	return fields, rows.Err()
}

func (s *SQLiteStore) CreateField(ctx context.Context, f types.Field) (types.Field, error) {
	if err := validateStored(f); err != nil {
		return types.Field{}, err
	}
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO fields (id, name, type, service, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		f.ID, f.Name, string(f.Type), f.Service, f.CreatedAt)
	if err != nil {
		return types.Field{}, fmt.Errorf("inserting field: %w", err)
	}
	return f, nil
}

func (s *SQLiteStore) GetField(ctx context.Context, id string) (types.Field, error) {
	return s.scanOne(s.db.QueryRowContext(ctx, `
		SELECT id, name, type, service, created_at
		FROM fields WHERE id = ?`, id))
}

func (s *SQLiteStore) FindByService(ctx context.Context, service, name string) (types.Field, error) {
	return s.scanOne(s.db.QueryRowContext(ctx, `
		SELECT id, name, type, service, created_at
		FROM fields WHERE service = ? AND name = ?`, service, name))
}

func (s *SQLiteStore) scanOne(row *sql.Row) (types.Field, error) {
	var f types.Field
	err := row.Scan(&f.ID, &f.Name, &f.Type, &f.Service, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Field{}, ErrNotFound
	}
	if err != nil {
		return types.Field{}, fmt.Errorf("scanning field: %w", err)
	}
	return f, nil
}
