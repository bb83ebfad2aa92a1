// Package storage provides SQLite-based persistence for the bookshelf layout
// and the hand of books waiting to be shelved.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-bookshelf/internal/shelf"
)

// Store manages the SQLite database connection and implements shelf.Store.
type Store struct {
	db      *sql.DB
	initial shelf.Grid
}

var _ shelf.Store = (*Store)(nil)

// Default shape of a brand-new shelf.
const (
	DefaultBooksPerShelf = 5
	DefaultShelves       = 3
)

// Option configures Open.
type Option func(*Store)

// WithInitialGrid sets the shape used when the database has no shelf yet.
// Existing databases keep their stored shape.
func WithInitialGrid(g shelf.Grid) Option {
	return func(s *Store) {
		if g.Rows > 0 && g.Cols > 0 {
			s.initial = g
		}
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string, opts ...Option) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer at a time; SQLite would otherwise answer "database is locked"
	// to a second transaction from another SSH session.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{
		db:      db,
		initial: shelf.Grid{Rows: DefaultShelves, Cols: DefaultBooksPerShelf},
	}
	for _, opt := range opts {
		opt(store)
	}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist and seeds the
// single shelf_design row.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS shelf_design (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			books_per_shelf INTEGER NOT NULL CHECK (books_per_shelf > 0),
			total_shelves INTEGER NOT NULL CHECK (total_shelves > 0)
		);

		CREATE TABLE IF NOT EXISTS shelf_books (
			isbn TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			authors TEXT NOT NULL DEFAULT '',
			cover TEXT NOT NULL DEFAULT '',
			class TEXT NOT NULL DEFAULT '',
			shelf_row INTEGER NOT NULL,
			shelf_col INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_shelf_books_cell ON shelf_books(shelf_row, shelf_col);

		CREATE TABLE IF NOT EXISTS hand (
			isbn TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			authors TEXT NOT NULL DEFAULT '',
			cover TEXT NOT NULL DEFAULT '',
			class TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO shelf_design (id, books_per_shelf, total_shelves) VALUES (1, ?, ?)",
		s.initial.Cols, s.initial.Rows,
	)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// inTx runs fn inside a transaction, committing on nil and rolling back on
// error.
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit transaction: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and the string form SQLite may return.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
