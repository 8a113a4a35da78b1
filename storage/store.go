// Package storage provides the durable local key-value store backing the
// session layer. Values live in a single SQLite table so multi-key writes
// and removals can share one transaction.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Well-known keys for the persisted session. The user value is the JSON
// encoding of models.User.
const (
	TokenKey = "@Trimly:token"
	UserKey  = "@Trimly:user"
)

const schema = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// Store wraps the SQLite connection with key-value accessors.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the store at the given path, creating the
// directory structure if needed.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	// WAL keeps concurrent readers cheap; busy_timeout waits instead of
	// failing when another process holds the file.
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening state database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to state database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating kv table: %w", err)
	}

	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)

	return &Store{db: db, path: path}, nil
}

// Path returns the filesystem path to the database file.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value for a key. The second result reports whether the
// key was present.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading key %q: %w", key, err)
	}
	return value, true, nil
}

// MultiSet writes all pairs inside one transaction; either every key is
// written or none is.
func (s *Store) MultiSet(ctx context.Context, pairs map[string]string) error {
	return s.transaction(func(tx *sql.Tx) error {
		for key, value := range pairs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO kv (key, value) VALUES (?, ?)
				 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
				key, value); err != nil {
				return fmt.Errorf("writing key %q: %w", key, err)
			}
		}
		return nil
	})
}

// MultiRemove deletes all keys inside one transaction. Missing keys are
// not an error.
func (s *Store) MultiRemove(ctx context.Context, keys ...string) error {
	return s.transaction(func(tx *sql.Tx) error {
		for _, key := range keys {
			if _, err := tx.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
				return fmt.Errorf("removing key %q: %w", key, err)
			}
		}
		return nil
	})
}

// transaction executes fn within a transaction, rolling back on error.
func (s *Store) transaction(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rolling back transaction: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
