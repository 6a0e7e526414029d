// internal/store/sqlite.go
//
// SQLite-backed key-value slot (table kv, created by migration 00001).
// Each key holds one serialized value; Put overwrites.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLSlot stores values in the kv table.
type SQLSlot struct{ db *sql.DB }

// NewSQLSlot wraps an open database that has been migrated.
func NewSQLSlot(db *sql.DB) *SQLSlot { return &SQLSlot{db: db} }

// Get returns the value stored under key, or ErrNotFound.
func (s *SQLSlot) Get(ctx context.Context, key string) ([]byte, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key=?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv get %s: %w", key, err)
	}
	return []byte(v), nil
}

// Put inserts or replaces the value under key.
func (s *SQLSlot) Put(ctx context.Context, key string, value []byte) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		key, string(value), now,
	)
	if err != nil {
		return fmt.Errorf("kv put %s: %w", key, err)
	}
	return nil
}

// Delete removes key; missing keys are not an error.
func (s *SQLSlot) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key=?`, key); err != nil {
		return fmt.Errorf("kv delete %s: %w", key, err)
	}
	return nil
}
