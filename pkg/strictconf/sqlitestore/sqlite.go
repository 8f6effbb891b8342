// Package sqlitestore provides a strictconf Provider backed by a
// SQLite key/value table. It is suitable for single-process production
// use where configuration must survive restarts and stay editable at
// runtime.
package sqlitestore

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/strictconf/strictconf/pkg/strictconf"
)

// Sentinel errors for store operations.
var (
	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("config store closed")

	// ErrAbsentValue indicates an attempt to store the absent value.
	// Use Delete to remove a key instead.
	ErrAbsentValue = errors.New("cannot store absent value")
)

// Store persists configuration values in SQLite and serves them as a
// strictconf Provider. Lookups hit the database on every Get; there is
// no caching layer, so concurrent writers are always visible.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// Provider conformance.
var _ strictconf.Provider = (*Store)(nil)

// Open creates or opens a SQLite-backed store. The path should be a
// file path (e.g., "./config.db") or ":memory:" for testing.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS config_values (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &Store{db: db}, nil
}

// Get implements strictconf.Provider. A missing row is an absent
// value; database failures are returned as-is and travel through the
// accessor unchanged.
func (s *Store) Get(key string) (strictconf.Value, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return strictconf.Absent(), ErrStoreClosed
	}

	var encoded string
	err := s.db.QueryRow(`
		SELECT value FROM config_values WHERE key = ?
	`, key).Scan(&encoded)

	if err == sql.ErrNoRows {
		return strictconf.Absent(), nil
	}
	if err != nil {
		return strictconf.Absent(), fmt.Errorf("load config value: %w", err)
	}
	return decode([]byte(encoded))
}

// Set stores a value under key, overwriting any previous value.
// Absent values cannot be stored; delete the key instead.
func (s *Store) Set(key string, v strictconf.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	if v.Kind() == strictconf.KindAbsent {
		return ErrAbsentValue
	}

	encoded, err := encode(v)
	if err != nil {
		return fmt.Errorf("encode config value: %w", err)
	}

	if _, err := s.db.Exec(`
		INSERT INTO config_values (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, string(encoded)); err != nil {
		return fmt.Errorf("save config value: %w", err)
	}
	return nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.Exec(`
		DELETE FROM config_values WHERE key = ?
	`, key); err != nil {
		return fmt.Errorf("delete config value: %w", err)
	}
	return nil
}

// Keys returns all stored keys in lexical order.
func (s *Store) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT key FROM config_values ORDER BY key
	`)
	if err != nil {
		return nil, fmt.Errorf("list config keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan config key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate config keys: %w", err)
	}
	return keys, nil
}

// Close releases the database connection. Close is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
