// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	// Register the sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"
)

const schema = `CREATE TABLE IF NOT EXISTS documents (
	name TEXT PRIMARY KEY,
	body BLOB NOT NULL
)`

// SQLite fetches documents from a packed SQLite bundle.
type SQLite struct {
	db     *sql.DB
	owned  bool
	logger *slog.Logger
}

// OpenSQLite opens the SQLite bundle at path. The bundle must be closed with
// Close.
func OpenSQLite(path string, opts *Options) (*SQLite, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	s := NewSQLite(db, opts)
	s.owned = true
	return s, nil
}

// NewSQLite returns a fetcher reading from an already open database. The
// caller keeps ownership of db.
func NewSQLite(db *sql.DB, opts *Options) *SQLite {
	return &SQLite{
		db:     db,
		logger: opts.logger(),
	}
}

// Fetch implements [Fetcher.Fetch].
func (s *SQLite) Fetch(ctx context.Context, name string) ([]byte, error) {
	var b []byte
	err := s.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE name = ?`, name).Scan(&b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("querying %q: %w", name, err)
	}

	s.logger.DebugContext(ctx, "fetched document",
		"source", "sqlite",
		"name", name,
		"bytes", len(b),
	)
	return b, nil
}

// Close closes the database if it was opened by OpenSQLite.
func (s *SQLite) Close() error {
	if !s.owned {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing sqlite bundle: %w", err)
	}
	return nil
}

// InitBundle creates the documents table if it does not exist.
func InitBundle(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating documents table: %w", err)
	}
	return nil
}

// Pack copies every document in dir into db in a single transaction and
// returns the number of documents written. Existing documents with the same
// name are replaced.
func Pack(ctx context.Context, db *sql.DB, dir *Dir) (int, error) {
	if err := InitBundle(ctx, db); err != nil {
		return 0, err
	}

	names, err := dir.Names()
	if err != nil {
		return 0, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		// Rollback is a no-op after a successful commit.
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO documents (name, body) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, name := range names {
		b, err := dir.Fetch(ctx, name)
		if err != nil {
			return 0, err
		}
		if _, err := stmt.ExecContext(ctx, name, b); err != nil {
			return 0, fmt.Errorf("writing %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return len(names), nil
}
