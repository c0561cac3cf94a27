// Package index implements the sorted on-disk indexes birdql queries run
// against. A Store is an ordered byte-string keyed table where one key may
// hold several record identifiers; a Cursor walks it in ascending key order.
package index

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// ErrNotFound is returned by Get when the key has no entry.
var ErrNotFound = errors.New("index: key not found")

// Entry is one key/value pair. Values are record identifiers except in the
// records index, where they hold the compressed record payload.
type Entry struct {
	Key   []byte
	Value []byte
}

// Store is a single sorted index backed by a SQLite database file.
// Rows are kept in (key, value) order, so duplicate keys enumerate their
// values in a deterministic order.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the index database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 30000",
		"PRAGMA cache_size = -64000", // 64MB cache
		"PRAGMA temp_store = memory",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("applying pragma %q: %w", pragma, err)
		}
	}

	schema := `CREATE TABLE IF NOT EXISTS entries (
		k BLOB NOT NULL,
		v BLOB NOT NULL,
		PRIMARY KEY (k, v)
	) WITHOUT ROWID`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating entries table: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file backing this store.
func (s *Store) Path() string {
	return s.path
}

// Put stores one entry. Storing an identical (key, value) pair twice is a
// no-op, matching duplicate-set semantics.
func (s *Store) Put(key, value []byte) error {
	_, err := s.db.Exec("INSERT OR IGNORE INTO entries (k, v) VALUES (?, ?)", key, value)
	if err != nil {
		return fmt.Errorf("inserting entry: %w", err)
	}
	return nil
}

// PutAll stores a batch of entries in a single transaction.
func (s *Store) PutAll(entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO entries (k, v) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, e := range entries {
		if _, err := stmt.Exec(e.Key, e.Value); err != nil {
			return fmt.Errorf("inserting entry %q: %w", e.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	committed = true
	return nil
}

// Get returns the first value stored under key, or ErrNotFound.
func (s *Store) Get(key []byte) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow("SELECT v FROM entries WHERE k = ? ORDER BY v LIMIT 1", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("looking up key %q: %w", key, err)
	}
	return value, nil
}

// Len returns the total number of entries.
func (s *Store) Len() (int64, error) {
	var n int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return n, nil
}

// DistinctKeys returns the number of distinct keys.
func (s *Store) DistinctKeys() (int64, error) {
	var n int64
	if err := s.db.QueryRow("SELECT COUNT(DISTINCT k) FROM entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting distinct keys: %w", err)
	}
	return n, nil
}

// Cursor is a forward-only iterator over a store, positioned on one entry at
// a time. A cursor belongs to a single scan: callers must Close it on every
// exit path, and check Err after the position is exhausted.
type Cursor struct {
	rows  *sql.Rows
	key   []byte
	value []byte
	valid bool
	err   error
}

// Seek positions a cursor at the first entry whose key is >= key.
func (s *Store) Seek(key []byte) (*Cursor, error) {
	rows, err := s.db.Query("SELECT k, v FROM entries WHERE k >= ? ORDER BY k, v", key)
	if err != nil {
		return nil, fmt.Errorf("seeking to key %q: %w", key, err)
	}
	c := &Cursor{rows: rows}
	c.advance()
	return c, c.err
}

// SeekExact positions a cursor at key. If the key is absent the cursor is
// returned invalid, which is not an error.
func (s *Store) SeekExact(key []byte) (*Cursor, error) {
	c, err := s.Seek(key)
	if err != nil {
		return c, err
	}
	if c.valid && !bytes.Equal(c.key, key) {
		c.valid = false
	}
	return c, nil
}

// First positions a cursor at the smallest key in the store.
func (s *Store) First() (*Cursor, error) {
	rows, err := s.db.Query("SELECT k, v FROM entries ORDER BY k, v")
	if err != nil {
		return nil, fmt.Errorf("positioning at first key: %w", err)
	}
	c := &Cursor{rows: rows}
	c.advance()
	return c, c.err
}

// Valid reports whether the cursor is positioned on an entry.
func (c *Cursor) Valid() bool {
	return c.valid
}

// Key returns the key at the current position.
func (c *Cursor) Key() []byte {
	return c.key
}

// Value returns the value at the current position.
func (c *Cursor) Value() []byte {
	return c.value
}

func (c *Cursor) advance() {
	if !c.rows.Next() {
		c.valid = false
		if err := c.rows.Err(); err != nil {
			c.err = fmt.Errorf("advancing cursor: %w", err)
		}
		return
	}
	if err := c.rows.Scan(&c.key, &c.value); err != nil {
		c.valid = false
		c.err = fmt.Errorf("reading cursor entry: %w", err)
		return
	}
	c.valid = true
}

// Advance moves to the next entry in ascending (key, value) order and
// reports whether the cursor is still positioned on one.
func (c *Cursor) Advance() bool {
	if !c.valid {
		return false
	}
	c.advance()
	return c.valid
}

// AdvanceWithinDuplicates moves to the next value stored under the same key.
// It reports false once the key changes or the store is exhausted.
func (c *Cursor) AdvanceWithinDuplicates() bool {
	if !c.valid {
		return false
	}
	prev := c.key
	c.advance()
	if c.valid && !bytes.Equal(c.key, prev) {
		c.valid = false
	}
	return c.valid
}

// Err returns the first storage error encountered while navigating.
// An exhausted position with a nil Err is a legitimate end of scan.
func (c *Cursor) Err() error {
	return c.err
}

func (c *Cursor) Close() error {
	return c.rows.Close()
}
