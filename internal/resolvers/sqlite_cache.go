package resolvers

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/hlsl-lang/frontend/internal/preprocessor"
)

// SQLiteCache wraps another IncludeResolver with a persistent cache of
// resolved (current, target, quoted) -> (handle, text) lookups, so
// repeated parses of a translation unit that shares a large include
// tree (a shader library's common headers) skip re-reading and
// re-resolving unchanged files from disk (§4.2, "pluggable resolver
// abstraction" — a caching layer is one of the pluggable shapes named).
//
// Grounded on the teacher's database/sql usage over modernc.org/sqlite
// for a small key-value cache table.
type SQLiteCache struct {
	db    *sql.DB
	inner preprocessor.IncludeResolver
}

// NewSQLiteCache opens (creating if necessary) a SQLite database at
// dsn and wraps inner with a resolution cache backed by it. dsn is any
// modernc.org/sqlite data source, typically a file path or ":memory:".
func NewSQLiteCache(dsn string, inner preprocessor.IncludeResolver) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening include cache database: %w", err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS include_cache (
			current TEXT NOT NULL,
			target  TEXT NOT NULL,
			quoted  INTEGER NOT NULL,
			handle  TEXT NOT NULL,
			text    TEXT NOT NULL,
			PRIMARY KEY (current, target, quoted)
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating include cache table: %w", err)
	}
	return &SQLiteCache{db: db, inner: inner}, nil
}

// Close releases the underlying database handle.
func (c *SQLiteCache) Close() error { return c.db.Close() }

func (c *SQLiteCache) Resolve(current, target string, quoted bool) (string, string, error) {
	row := c.db.QueryRow(
		`SELECT handle, text FROM include_cache WHERE current = ? AND target = ? AND quoted = ?`,
		current, target, boolToInt(quoted),
	)
	var handle, text string
	if err := row.Scan(&handle, &text); err == nil {
		return handle, text, nil
	}

	handle, text, err := c.inner.Resolve(current, target, quoted)
	if err != nil {
		return "", "", err
	}

	if _, err := c.db.Exec(
		`INSERT OR REPLACE INTO include_cache (current, target, quoted, handle, text) VALUES (?, ?, ?, ?, ?)`,
		current, target, boolToInt(quoted), handle, text,
	); err != nil {
		return handle, text, nil // cache write failure doesn't invalidate a successful resolve
	}
	return handle, text, nil
}

// Invalidate drops every cached entry resolved as current, for callers
// that track file-change notifications upstream (an editor's
// watch-and-reparse loop) and know current's includes may have changed.
func (c *SQLiteCache) Invalidate(current string) error {
	_, err := c.db.Exec(`DELETE FROM include_cache WHERE current = ?`, current)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
