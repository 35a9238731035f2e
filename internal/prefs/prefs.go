// Package prefs persists user preferences in a local sqlite key/value
// table. The only value the application stores is the display currency
// code; computed schedules are never persisted.
package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/finhouse/mortgage-planner/pkg/constants"
)

// Store is a sqlite-backed key/value preference store.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the preference database at dbPath.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create preferences directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open preferences database: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS preferences (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create preferences table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the stored value for key, or the empty string when unset.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read preference %s: %w", key, err)
	}
	return value, nil
}

// Set stores a value under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("store preference %s: %w", key, err)
	}
	return nil
}

// Currency returns the persisted display currency, defaulting to EUR.
func (s *Store) Currency(ctx context.Context) (string, error) {
	code, err := s.Get(ctx, constants.CurrencyPreferenceKey)
	if err != nil {
		return "", err
	}
	if code == "" {
		return constants.DefaultCurrency, nil
	}
	return code, nil
}

// SetCurrency persists the display currency code.
func (s *Store) SetCurrency(ctx context.Context, code string) error {
	return s.Set(ctx, constants.CurrencyPreferenceKey, code)
}
