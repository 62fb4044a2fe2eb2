package storage

import (
	"encoding/csv"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// Row is a single CSV record keyed by header column.
type Row map[string]string

// StorageError wraps an underlying I/O failure with the operation and path.
// Callers surface it as-is; no storage error is classified as transient.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Store persists one collection per CSV file with a full-rewrite model.
// Each file's read-modify-write cycle is guarded by a per-path mutex, so
// concurrent requests within this process cannot lose updates to the same
// collection. Multiple processes sharing a data directory still race.
type Store struct {
	fs afero.Fs

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStore builds a Store over the given filesystem. Production wiring passes
// afero.NewOsFs(); tests pass afero.NewMemMapFs().
func NewStore(fs afero.Fs) *Store {
	return &Store{fs: fs, locks: make(map[string]*sync.Mutex)}
}

func (s *Store) lock(path string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[path]
	if !ok {
		l = &sync.Mutex{}
		s.locks[path] = l
	}
	return l
}

// ReadAll returns every row of the collection in file order. A missing file
// is an empty collection, not an error.
func (s *Store) ReadAll(path string) ([]Row, error) {
	l := s.lock(path)
	l.Lock()
	defer l.Unlock()
	return s.readAll(path)
}

func (s *Store) readAll(path string) ([]Row, error) {
	exists, err := afero.Exists(s.fs, path)
	if err != nil {
		return nil, &StorageError{Op: "stat", Path: path, Err: err}
	}
	if !exists {
		return []Row{}, nil
	}

	f, err := s.fs.Open(path)
	if err != nil {
		return nil, &StorageError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, &StorageError{Op: "read", Path: path, Err: err}
	}
	if len(records) == 0 {
		return []Row{}, nil
	}

	header := records[0]
	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteAll fully rewrites the collection file with the header row followed by
// every row in the given order, creating parent directories as needed.
func (s *Store) WriteAll(path string, header []string, rows []Row) error {
	l := s.lock(path)
	l.Lock()
	defer l.Unlock()
	return s.writeAll(path, header, rows)
}

func (s *Store) writeAll(path string, header []string, rows []Row) error {
	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &StorageError{Op: "mkdir", Path: path, Err: err}
	}

	f, err := s.fs.Create(path)
	if err != nil {
		return &StorageError{Op: "create", Path: path, Err: err}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	record := make([]string, len(header))
	for _, row := range rows {
		for i, col := range header {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			return &StorageError{Op: "write", Path: path, Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// EnsureExists idempotently creates an empty header-only collection file.
func (s *Store) EnsureExists(path string, header []string) error {
	l := s.lock(path)
	l.Lock()
	defer l.Unlock()

	exists, err := afero.Exists(s.fs, path)
	if err != nil {
		return &StorageError{Op: "stat", Path: path, Err: err}
	}
	if exists {
		return nil
	}
	return s.writeAll(path, header, nil)
}

// Update runs fn over the current rows and rewrites the file with its result,
// all under the collection's mutex. fn returning an error aborts the rewrite.
func (s *Store) Update(path string, header []string, fn func(rows []Row) ([]Row, error)) error {
	l := s.lock(path)
	l.Lock()
	defer l.Unlock()

	rows, err := s.readAll(path)
	if err != nil {
		return err
	}
	next, err := fn(rows)
	if err != nil {
		return err
	}
	return s.writeAll(path, header, next)
}
