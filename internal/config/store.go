package config

import (
	"context"
	"fmt"
	"os"

	"focusflow/internal/storage"
	"focusflow/internal/storage/jsonfile"
	"focusflow/internal/storage/sqlite"
)

// CreateStore creates the board store selected by the configuration
func CreateStore(ctx context.Context, config *Config) (storage.Store, error) {
	path := config.GetStoragePath()
	perms := os.FileMode(config.Storage.DirPermissions)

	switch config.Storage.Driver {
	case DriverJSON:
		return jsonfile.New(path, perms), nil
	case DriverSQLite:
		store, err := sqlite.NewWithOptions(ctx, path, sqlite.Options{
			Key:            config.Storage.Key,
			QueryTimeout:   config.GetQueryTimeout(),
			DirPermissions: perms,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return store, nil
	default:
		return nil, &ConfigError{Field: "storage.driver", Message: fmt.Sprintf("unknown driver %q", config.Storage.Driver)}
	}
}

// CreateTestStore creates an in-memory SQLite store for testing
func CreateTestStore(ctx context.Context) (storage.Store, error) {
	store, err := sqlite.New(ctx, sqlite.MemoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	return store, nil
}
