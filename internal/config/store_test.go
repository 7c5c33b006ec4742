package config

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusflow/internal/storage"
	"focusflow/internal/storage/jsonfile"
	"focusflow/internal/storage/sqlite"
)

func TestCreateStore(t *testing.T) {
	tests := []struct {
		name     string
		driver   string
		filename string
		check    func(t *testing.T, s storage.Store)
		wantErr  bool
	}{
		{
			name:     "sqlite",
			driver:   DriverSQLite,
			filename: "board.db",
			check: func(t *testing.T, s storage.Store) {
				_, ok := s.(*sqlite.Store)
				assert.True(t, ok)
			},
		},
		{
			name:     "json",
			driver:   DriverJSON,
			filename: "board.json",
			check: func(t *testing.T, s storage.Store) {
				js, ok := s.(*jsonfile.Store)
				require.True(t, ok)
				assert.Equal(t, "board.json", filepath.Base(js.Path()))
			},
		},
		{
			name:     "unknown driver",
			driver:   "bolt",
			filename: "board.db",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			cfg.Storage.Dir = t.TempDir()
			cfg.Storage.Driver = tt.driver
			cfg.Storage.Filename = tt.filename

			store, err := CreateStore(context.Background(), cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer store.Close()

			tt.check(t, store)

			rec, err := store.Load(context.Background())
			require.NoError(t, err)
			assert.Nil(t, rec)

			require.NoError(t, store.Save(context.Background(), &storage.StateRecord{Tasks: []storage.TaskRecord{}, Seq: 1}))
			rec, err = store.Load(context.Background())
			require.NoError(t, err)
			require.NotNil(t, rec)
			assert.Equal(t, 1, rec.Seq)
		})
	}
}

func TestCreateTestStore(t *testing.T) {
	store, err := CreateTestStore(context.Background())
	require.NoError(t, err)
	defer store.Close()

	rec, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, rec)
}
