// Package storage persists ordered record collections as JSON files.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bukukas/bukukas/internal/apperrors"
)

// File stores a slice of T as a JSON array. Every Save rewrites the whole
// file through a temp file and rename, so a reader never sees a partial write.
type File[T any] struct {
	path string
}

// NewFile returns a File backed by path.
func NewFile[T any](path string) *File[T] {
	return &File[T]{path: path}
}

// Path returns the backing file path.
func (f *File[T]) Path() string { return f.path }

// Load returns the stored records. A missing or empty file is an empty
// collection, and a {"Records": [...]} object is read as its array. A file
// that cannot be decoded is moved aside to "<path>.corrupt" so the next Save
// does not overwrite it, and Load returns an error wrapping
// apperrors.ErrCorrupt.
func (f *File[T]) Load() ([]T, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &apperrors.PersistenceError{Op: "load", Path: f.path, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		if wrapped, ok := unwrap[T](data); ok {
			return wrapped, nil
		}
		if rerr := os.Rename(f.path, f.path+".corrupt"); rerr != nil {
			err = errors.Join(err, rerr)
		}
		return nil, &apperrors.PersistenceError{
			Op:   "load",
			Path: f.path,
			Err:  fmt.Errorf("%w: %v", apperrors.ErrCorrupt, err),
		}
	}
	return items, nil
}

// unwrap accepts the older {"Records": [...]} layout. The next Save writes
// a bare array.
func unwrap[T any](data []byte) ([]T, bool) {
	var doc struct {
		Records []T `json:"Records"`
	}
	if err := json.Unmarshal(data, &doc); err != nil || doc.Records == nil {
		return nil, false
	}
	return doc.Records, true
}

// Save replaces the stored records with items.
func (f *File[T]) Save(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "    ")
	if err != nil {
		return &apperrors.PersistenceError{Op: "save", Path: f.path, Err: err}
	}
	if err := writeAtomic(f.path, append(data, '\n')); err != nil {
		return &apperrors.PersistenceError{Op: "save", Path: f.path, Err: err}
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing file: %w", err)
	}
	return nil
}
