package api

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusflow/internal/config"
	"focusflow/internal/errors"
	"focusflow/internal/services"
	"focusflow/internal/storage"
)

var apiNow = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// memStore keeps the last saved record and can be told to fail
type memStore struct {
	mu      sync.Mutex
	record  *storage.StateRecord
	saves   int
	loadErr error
	saveErr error
	closed  bool
}

func (m *memStore) Load(context.Context) (*storage.StateRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.record, m.loadErr
}

func (m *memStore) Save(_ context.Context, record *storage.StateRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.record = record
	m.saves++
	return nil
}

func (m *memStore) Close() error {
	m.closed = true
	return nil
}

func setupTestAPI(t *testing.T, store storage.Store, opts ...Option) API {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return apiNow })}, opts...)
	instance, err := Open(context.Background(), store, config.NewConfig(), nil, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = instance.Close() })
	return instance
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name           string
		store          *memStore
		expectedTasks  int
		expectedNextID string
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:           "should start empty when nothing was saved",
			store:          &memStore{},
			expectedTasks:  0,
			expectedNextID: "0001",
		},
		{
			name: "should restore saved tasks and continue the id sequence",
			store: &memStore{record: &storage.StateRecord{
				Tasks: []storage.TaskRecord{
					{ID: "0003", Title: "Saved", Status: "todo", CreatedAt: "2024-12-31T10:00:00Z"},
				},
				Seq: 4,
			}},
			expectedTasks:  1,
			expectedNextID: "0004",
		},
		{
			name: "should never reissue a stored id when the counter lags",
			store: &memStore{record: &storage.StateRecord{
				Tasks: []storage.TaskRecord{{ID: "0009", Title: "Saved"}},
				Seq:   2,
			}},
			expectedTasks:  1,
			expectedNextID: "0010",
		},
		{
			name:  "should wrap load failures as storage errors",
			store: &memStore{loadErr: stderrors.New("disk gone")},
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeStorage))
			},
		},
		{
			name: "should reject a stored record with bad timestamps",
			store: &memStore{record: &storage.StateRecord{
				Tasks: []storage.TaskRecord{{ID: "0001", Title: "Bad", Due: strPtr("soon")}},
			}},
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeStorage))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()

			instance, err := Open(ctx, tt.store, nil, nil, WithClock(func() time.Time { return apiNow }))

			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
				assert.Nil(t, instance)
				return
			}
			require.NoError(t, err)
			defer instance.Close()

			views, err := instance.ListTasks(ctx, emptyFilter, "")
			require.NoError(t, err)
			assert.Len(t, views, tt.expectedTasks)
			assert.Equal(t, 0, tt.store.saves, "opening does not write")

			created, err := instance.QuickAdd(ctx, "Next one")
			require.NoError(t, err)
			assert.Equal(t, tt.expectedNextID, created.ID)
		})
	}
}

func TestOpen_PersistsEveryMutation(t *testing.T) {
	store := &memStore{}
	instance := setupTestAPI(t, store)
	ctx := context.Background()

	task, err := instance.QuickAdd(ctx, "Write tests")
	require.NoError(t, err)
	require.NotNil(t, store.record)
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, 2, store.record.Seq)
	assert.Equal(t, task.ID, store.record.Tasks[0].ID)

	_, err = instance.ToggleDone(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "done", store.record.Tasks[0].Status)
	assert.NotNil(t, store.record.Tasks[0].CompletedAt)

	require.NoError(t, instance.DeleteTask(ctx, task.ID))
	assert.Empty(t, store.record.Tasks)
	assert.Equal(t, 3, store.saves)

	require.NoError(t, instance.DeleteTask(ctx, "0404"))
	assert.Equal(t, 3, store.saves, "deleting an unknown id does not save")
}

func TestOpen_SaveFailureKeepsChange(t *testing.T) {
	store := &memStore{saveErr: stderrors.New("read-only")}
	instance := setupTestAPI(t, store)
	ctx := context.Background()

	task, err := instance.QuickAdd(ctx, "Still here")

	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeStorage))
	require.NotNil(t, task)
	view, err := instance.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Still here", view.Task.Title)
}

func TestOpen_WithSQLiteStore(t *testing.T) {
	ctx := context.Background()
	store, err := config.CreateTestStore(ctx)
	require.NoError(t, err)

	first, err := Open(ctx, store, config.NewConfig(), nil, WithClock(func() time.Time { return apiNow }))
	require.NoError(t, err)
	_, err = first.QuickAdd(ctx, "Renew passport tomorrow")
	require.NoError(t, err)

	second, err := Open(ctx, store, config.NewConfig(), nil, WithClock(func() time.Time { return apiNow }))
	require.NoError(t, err)
	defer second.Close()

	views, err := second.ListTasks(ctx, emptyFilter, "")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Renew passport", views[0].Task.Title)
	require.NotNil(t, views[0].Task.Due)
	assert.True(t, time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC).Equal(*views[0].Task.Due))
	// 21 hours away is less than a whole day
	assert.True(t, strings.HasSuffix(views[0].DueText, " (today)"), views[0].DueText)
}

func TestOpen_UsesConfiguredDefaults(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Defaults.List = "Triage"
	cfg.Defaults.QuickPriority = "P1"
	cfg.Defaults.Priority = "P0"
	ctx := context.Background()

	instance, err := Open(ctx, &memStore{}, cfg, nil)
	require.NoError(t, err)
	defer instance.Close()

	quick, err := instance.QuickAdd(ctx, "Sort mail")
	require.NoError(t, err)
	assert.Equal(t, "Triage", quick.List)
	assert.Equal(t, "P1", string(quick.Priority))

	form, err := instance.CreateTask(ctx, services.CreateRequest{Title: "Read book", List: "Home"})
	require.NoError(t, err)
	assert.Equal(t, "P0", string(form.Priority))
}

func strPtr(s string) *string {
	return &s
}
