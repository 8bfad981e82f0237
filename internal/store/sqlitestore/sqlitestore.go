// Package sqlitestore persists task items in a local SQLite database.
//
// The database is the durable source of truth for the task list. Opening
// is idempotent: the parent directory and the schema are created when
// absent, and the container version is pinned with PRAGMA user_version.
// There is no migration logic; a database stamped with a different
// nonzero version is refused.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/idilsaglam/syncpad/internal/store"
	"github.com/idilsaglam/syncpad/internal/task"
)

// schemaVersion is stamped into PRAGMA user_version on first open.
const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS items (
	id         TEXT PRIMARY KEY,
	text       TEXT NOT NULL,
	completed  INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL,
	synced     INTEGER NOT NULL DEFAULT 0
);
`

// Store is a task store backed by a single SQLite database file.
type Store struct {
	db   *sql.DB
	path string
}

var _ store.Store = (*Store)(nil)

// Open opens the database at path, creating the file, its parent
// directory and the schema when missing. Use ":memory:" for an ephemeral
// database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// modernc's driver serializes writers per connection; a single
	// connection avoids SQLITE_BUSY and keeps :memory: databases
	// coherent across calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %s: %w", pragma, err)
		}
	}

	s := &Store{db: db, path: path}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// OpenMemory opens an ephemeral in-memory store and closes it when the
// test finishes.
func OpenMemory(t testing.TB) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// init creates the schema on a fresh database and verifies the version
// stamp on an existing one.
func (s *Store) init() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	switch version {
	case schemaVersion:
		return nil
	case 0:
		if _, err := s.db.Exec(schema); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
			return fmt.Errorf("stamp user_version: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("database %s has container version %d, this build expects %d", s.path, version, schemaVersion)
	}
}

// Put inserts the item or replaces the row with the same ID.
func (s *Store) Put(ctx context.Context, item task.Item) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO items (id, text, completed, created_at, synced)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			text       = excluded.text,
			completed  = excluded.completed,
			created_at = excluded.created_at,
			synced     = excluded.synced
	`, item.ID, item.Text, boolToInt(item.Completed), item.CreatedAt.UnixMilli(), boolToInt(item.Synced))
	if err != nil {
		return fmt.Errorf("put item %s: %w", item.ID, err)
	}
	return nil
}

// Delete removes the row with the given ID. Absent IDs are ignored.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	return nil
}

// ListAll returns every stored item.
func (s *Store) ListAll(ctx context.Context) ([]task.Item, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, text, completed, created_at, synced FROM items`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []task.Item
	for rows.Next() {
		var (
			item              task.Item
			completed, synced int
			createdMs         int64
		)
		if err := rows.Scan(&item.ID, &item.Text, &completed, &createdMs, &synced); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		item.Completed = completed != 0
		item.Synced = synced != 0
		item.CreatedAt = time.UnixMilli(createdMs)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
