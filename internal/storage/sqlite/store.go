package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	apperrors "focusflow/internal/errors"
	"focusflow/internal/storage"
	"focusflow/internal/storage/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Options tunes a Store.
type Options struct {
	Key            string
	QueryTimeout   time.Duration
	DirPermissions os.FileMode
}

// Store keeps the board blob in a SQLite kv table.
type Store struct {
	db      *sql.DB
	key     string
	timeout time.Duration
	now     func() time.Time
}

var _ storage.Store = (*Store)(nil)

// New creates a Store at dbPath with default options
func New(ctx context.Context, dbPath string) (*Store, error) {
	return NewWithOptions(ctx, dbPath, Options{})
}

// NewWithOptions creates a Store, creating the parent directory and running migrations.
func NewWithOptions(ctx context.Context, dbPath string, opts Options) (*Store, error) {
	if opts.Key == "" {
		opts.Key = storage.DefaultKey
	}
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = 10 * time.Second
	}
	if opts.DirPermissions == 0 {
		opts.DirPermissions = 0755
	}

	if dbPath != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), opts.DirPermissions); err != nil {
			return nil, apperrors.NewStorageError("create storage directory", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, apperrors.NewStorageError("open database", err)
	}
	if dbPath == MemoryPath {
		// every new connection would see its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, apperrors.NewStorageError("run migrations", err)
	}

	return &Store{db: db, key: opts.Key, timeout: opts.QueryTimeout, now: time.Now}, nil
}

// Load reads the blob stored under the configured key
func (s *Store) Load(ctx context.Context) (*storage.StateRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	entry, err := s.Get(ctx, s.key)
	if err != nil || entry == nil {
		return nil, err
	}

	var record storage.StateRecord
	if err := json.Unmarshal([]byte(entry.Value), &record); err != nil {
		return nil, apperrors.NewStorageError("decode board", err)
	}
	return &record, nil
}

// Save replaces the blob stored under the configured key
func (s *Store) Save(ctx context.Context, record *storage.StateRecord) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(record); err != nil {
		return apperrors.NewStorageError("encode board", err)
	}
	return s.Put(ctx, s.key, string(bytes.TrimSpace(buf.Bytes())))
}

// Get returns the entry for key, or nil when it does not exist
func (s *Store) Get(ctx context.Context, key string) (*Entry, error) {
	query := `
	SELECT key, value, updated_at
	FROM kv
	WHERE key = ?`

	return QuerySingle(ctx, s.db, query, ScanEntry, "load "+key, key)
}

// Put upserts the value for key
func (s *Store) Put(ctx context.Context, key, value string) error {
	query := `
	INSERT INTO kv (key, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	return Execute(ctx, s.db, query, "save "+key, key, value, storage.FormatTime(s.now()))
}

// Delete removes key; a missing key is not an error
func (s *Store) Delete(ctx context.Context, key string) error {
	return Execute(ctx, s.db, `DELETE FROM kv WHERE key = ?`, "delete "+key, key)
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}
