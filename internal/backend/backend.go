// Package backend selects where the expense ledger is persisted.
package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/sqlitestore"
)

// Backend loads and saves the full expense sequence.
type Backend interface {
	Load(ctx context.Context) (*ledger.LoadResult, error)
	Save(ctx context.Context, expenses []model.Expense) error
	Close() error
}

// Type names a storage backend.
type Type string

const (
	CSV    Type = "csv"
	SQLite Type = "sqlite"
)

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t)
}

// IsValid reports whether t is a known backend.
func (t Type) IsValid() bool {
	switch t {
	case CSV, SQLite:
		return true
	default:
		return false
	}
}

// Config holds what Open needs to build a backend.
type Config struct {
	Type       Type
	DataFile   string
	SQLitePath string
}

// Open creates the backend described by cfg.
func Open(cfg Config) (Backend, error) {
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %q", cfg.Type)
	}

	switch cfg.Type {
	case SQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("sqlite backend requires a database path")
		}
		return sqlitestore.New(cfg.SQLitePath), nil
	default:
		if cfg.DataFile == "" {
			return nil, errors.New("csv backend requires a data file")
		}
		return ledger.NewFileStore(cfg.DataFile), nil
	}
}
