// Package sqlitestore persists expenses to a SQLite database.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store keeps the expense sequence in a single table, ordered by position.
// The database is opened lazily so that loading a missing file does not
// create it.
type Store struct {
	path string
	db   *sql.DB
}

// New creates a Store for the database at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) open(ctx context.Context) (*sql.DB, error) {
	if s.db != nil {
		return s.db, nil
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database dir: %w", err)
		}
	}

	dsn, err := dataSourceName(s.path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	s.db = db
	return db, nil
}

// dataSourceName builds a file: URI for path so that characters such as
// '?' and '#' in the file name are not taken as URI syntax.
func dataSourceName(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving database path: %w", err)
	}

	q := url.Values{}
	q.Add("_pragma", "journal_mode(wal)")
	q.Add("_pragma", "synchronous(normal)")

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: q.Encode()}
	return u.String(), nil
}

// Close closes the database if it was opened.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Load reads every stored row through the same gate as the CSV file.
// A missing database is an empty ledger.
func (s *Store) Load(ctx context.Context) (*ledger.LoadResult, error) {
	if s.db == nil {
		if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
			return &ledger.LoadResult{}, nil
		}
	}

	db, err := s.open(ctx)
	if err != nil {
		return &ledger.LoadResult{}, err
	}

	rows, err := db.QueryContext(ctx, "SELECT position, date, category, amount, description FROM expenses ORDER BY position")
	if err != nil {
		return &ledger.LoadResult{}, fmt.Errorf("querying expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var raw []model.RawRow
	for rows.Next() {
		var r model.RawRow
		if err := rows.Scan(&r.Line, &r.Date, &r.Category, &r.Amount, &r.Description); err != nil {
			return ledger.Collect(raw), fmt.Errorf("scanning expense: %w", err)
		}
		raw = append(raw, r)
	}
	if err := rows.Err(); err != nil {
		return ledger.Collect(raw), fmt.Errorf("reading expenses: %w", err)
	}
	return ledger.Collect(raw), nil
}

// Save replaces the whole table with expenses, in order, in one transaction.
func (s *Store) Save(ctx context.Context, expenses []model.Expense) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM expenses"); err != nil {
		return fmt.Errorf("clearing expenses: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO expenses (position, date, category, amount, description) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, e := range expenses {
		if _, err := stmt.ExecContext(ctx, i+1, e.Date, e.Category, model.FormatAmount(e.Amount), e.Description); err != nil {
			return fmt.Errorf("inserting expense %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing expenses: %w", err)
	}
	return nil
}
