// Package migrations holds the embedded schema of the sqlite board store.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"time"
)

//go:embed *.sql
var migrationsFS embed.FS

const upSuffix = ".up.sql"

// Migration is one numbered schema step, e.g. 000001_create_kv.up.sql
// paired with 000001_create_kv.down.sql.
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// RunMigrations applies every pending migration in version order,
// each in its own transaction.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	pending, err := Pending(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range pending {
		err := inTx(ctx, db, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, m.Up); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx,
				"INSERT INTO migrations (version, name, applied_at) VALUES (?, ?, ?)",
				m.Version, m.Name, time.Now().UTC().Format(time.RFC3339))
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", m.Name, err)
		}
	}
	return nil
}

// Pending returns the migrations not yet recorded in db. It creates the
// bookkeeping table on first use.
func Pending(ctx context.Context, db *sql.DB) ([]Migration, error) {
	if _, err := db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TEXT NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	all, err := LoadMigrations()
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}
	applied, err := AppliedVersions(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}

	pending := make([]Migration, 0, len(all))
	for _, m := range all {
		if !applied[m.Version] {
			pending = append(pending, m)
		}
	}
	return pending, nil
}

// LoadMigrations returns the embedded migrations ordered by version.
// Files without a numeric prefix are ignored.
func LoadMigrations() ([]Migration, error) {
	names, err := fs.Glob(migrationsFS, "*"+upSuffix)
	if err != nil {
		return nil, err
	}

	migrations := make([]Migration, 0, len(names))
	for _, file := range names {
		version := extractVersion(file)
		if version == 0 {
			continue
		}
		name := strings.TrimSuffix(file, upSuffix)

		up, err := fs.ReadFile(migrationsFS, file)
		if err != nil {
			return nil, err
		}
		down, err := fs.ReadFile(migrationsFS, name+".down.sql")
		if err != nil {
			return nil, fmt.Errorf("migration %s has no down script: %w", name, err)
		}

		migrations = append(migrations, Migration{Version: version, Name: name, Up: string(up), Down: string(down)})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

// AppliedVersions returns the set of migration versions already recorded.
func AppliedVersions(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func inTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// extractVersion reads the numeric prefix of "000001_name.up.sql"
func extractVersion(filename string) int {
	prefix, _, ok := strings.Cut(filename, "_")
	if !ok {
		return 0
	}
	version, err := strconv.Atoi(prefix)
	if err != nil || version < 0 {
		return 0
	}
	return version
}
