package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// migrations are applied in order on Open; each is idempotent.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS records (
		kind       TEXT NOT NULL,
		id         TEXT NOT NULL,
		payload    TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (kind, id)
	)`,
}

// DB is an open SQLite database holding records of any kind.
type DB struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the SQLite database at path and applies
// the schema. Use ":memory:" for a throwaway database.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps ":memory:" databases alive and serializes writes.
	db.SetMaxOpenConns(1)

	for _, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}
	return &DB{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// SQLite is a Repository backed by the records table. Values are stored as
// JSON under their kind, so several repositories can share one DB.
type SQLite[T any] struct {
	db   *DB
	kind string
}

// NewSQLite returns a repository for one record kind.
func NewSQLite[T any](db *DB, kind string) *SQLite[T] {
	return &SQLite[T]{db: db, kind: kind}
}

func (s *SQLite[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	var payload string
	err := s.db.db.QueryRowContext(ctx,
		`SELECT payload FROM records WHERE kind = ? AND id = ?`, s.kind, id,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, ErrNotFound
	}
	if err != nil {
		return zero, fmt.Errorf("failed to load %s %s: %w", s.kind, id, err)
	}

	var item T
	if err := json.Unmarshal([]byte(payload), &item); err != nil {
		return zero, fmt.Errorf("failed to decode %s %s: %w", s.kind, id, err)
	}
	return item, nil
}

func (s *SQLite[T]) Put(ctx context.Context, id string, item T) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to encode %s %s: %w", s.kind, id, err)
	}
	now := s.db.now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.db.ExecContext(ctx, `
		INSERT INTO records (kind, id, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(kind, id) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		s.kind, id, string(payload), now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to store %s %s: %w", s.kind, id, err)
	}
	return nil
}

func (s *SQLite[T]) Delete(ctx context.Context, id string) error {
	res, err := s.db.db.ExecContext(ctx, `DELETE FROM records WHERE kind = ? AND id = ?`, s.kind, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", s.kind, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", s.kind, id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite[T]) List(ctx context.Context) ([]T, error) {
	rows, err := s.db.db.QueryContext(ctx,
		`SELECT id, payload FROM records WHERE kind = ? ORDER BY rowid`, s.kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.kind, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]T, 0)
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", s.kind, err)
		}
		var item T
		if err := json.Unmarshal([]byte(payload), &item); err != nil {
			return nil, fmt.Errorf("failed to decode %s %s: %w", s.kind, id, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.kind, err)
	}
	return result, nil
}
