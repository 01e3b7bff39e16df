package ledger

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cleared-dev/tally/internal/model"
)

// FileStore persists expenses to a single CSV file.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore for the CSV file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the CSV file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads and validates the CSV file. A missing file is an empty ledger.
// Rows rejected by the gate are reported in the result. If the file cannot be
// opened or is malformed part way through, whatever was read is returned
// together with the error.
func (s *FileStore) Load(_ context.Context) (*LoadResult, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &LoadResult{}, nil
	}
	if err != nil {
		return &LoadResult{}, fmt.Errorf("opening expenses %s: %w", s.path, err)
	}
	defer f.Close()

	rows, err := ReadRows(f)
	res := Collect(rows)
	if err != nil {
		return res, fmt.Errorf("reading expenses %s: %w", s.path, err)
	}
	return res, nil
}

// Save overwrites the CSV file with the header and every expense in order.
func (s *FileStore) Save(_ context.Context, expenses []model.Expense) (err error) {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating expenses dir: %w", err)
		}
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("creating expenses file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing expenses file: %w", cerr)
		}
	}()

	if err := WriteExpenses(f, expenses); err != nil {
		return fmt.Errorf("writing expenses: %w", err)
	}
	return nil
}

// Close is a no-op; file handles are scoped to each Load and Save.
func (s *FileStore) Close() error {
	return nil
}
