// Package jsonfile stores the board blob as a JSON document on disk.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	apperrors "focusflow/internal/errors"
	"focusflow/internal/storage"
)

const filePerms = 0o600

// Store writes the blob to a single file. Each save replaces the file
// atomically so a crash never leaves a half-written board.
type Store struct {
	path     string
	dirPerms os.FileMode
}

var _ storage.Store = (*Store)(nil)

// New returns a Store for path. The parent directory is created on first save.
func New(path string, dirPerms os.FileMode) *Store {
	if dirPerms == 0 {
		dirPerms = 0o755
	}
	return &Store{path: path, dirPerms: dirPerms}
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the file; a missing file yields nil, nil.
func (s *Store) Load(ctx context.Context) (*storage.StateRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, apperrors.NewStorageError("read board file", err)
	}

	var record storage.StateRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, apperrors.NewStorageError("decode board file", err)
	}
	return &record, nil
}

// Save writes the record as indented JSON.
func (s *Store) Save(ctx context.Context, record *storage.StateRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), s.dirPerms); err != nil {
		return apperrors.NewStorageError("create board directory", err)
	}

	var buf bytes.Buffer
	if err := storage.Encode(&buf, record); err != nil {
		return apperrors.NewStorageError("encode board", err)
	}

	if err := atomic.WriteFile(s.path, &buf); err != nil {
		return apperrors.NewStorageError("write board file", err)
	}

	// atomic.WriteFile doesn't set permissions for new files
	if err := os.Chmod(s.path, filePerms); err != nil {
		return apperrors.NewStorageError("set board file permissions", err)
	}
	return nil
}

// Close is a no-op; the file is not held open between calls.
func (s *Store) Close() error {
	return nil
}
