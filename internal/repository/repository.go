// Package repository holds the in-memory task collection. Every committed
// mutation is handed to an injected save hook.
package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"focusflow/internal/domain"
	"focusflow/internal/errors"
)

// SaveFunc persists a snapshot of the state. It is called after every
// committed mutation while the repository lock is held.
type SaveFunc func(ctx context.Context, state domain.State) error

// Defaults are applied to blank fields on create.
type Defaults struct {
	Title    string
	List     string
	Priority domain.Priority
	Color    string
}

// DefaultDefaults returns the built-in create defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		Title:    domain.DefaultTitle,
		List:     domain.DefaultList,
		Priority: domain.DefaultPriority,
		Color:    domain.DefaultColor,
	}
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// WithDefaults overrides the create defaults. Empty fields keep the built-in value.
func WithDefaults(d Defaults) Option {
	return func(r *Repository) {
		if d.Title != "" {
			r.defaults.Title = d.Title
		}
		if d.List != "" {
			r.defaults.List = d.List
		}
		if d.Priority.IsValid() {
			r.defaults.Priority = d.Priority
		}
		if d.Color != "" {
			r.defaults.Color = d.Color
		}
	}
}

// Repository owns the task collection, the id counter and the settings.
// It is safe for concurrent use; mutations are serialized.
type Repository struct {
	mu       sync.Mutex
	tasks    []domain.Task
	seq      int
	settings domain.Settings

	save     SaveFunc
	now      func() time.Time
	defaults Defaults
}

// New creates an empty repository. save may be nil.
func New(save SaveFunc, opts ...Option) *Repository {
	r := &Repository{
		tasks:    []domain.Task{},
		seq:      1,
		save:     save,
		now:      time.Now,
		defaults: DefaultDefaults(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Restore loads state without saving. Used once at startup.
func (r *Repository) Restore(state domain.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replaceLocked(state)
}

// Replace swaps in state wholesale and saves it.
func (r *Repository) Replace(ctx context.Context, state domain.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replaceLocked(state)
	return r.persistLocked(ctx)
}

// Reset empties the board and restarts the id counter at 1. Settings are kept.
func (r *Repository) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = []domain.Task{}
	r.seq = 1
	return r.persistLocked(ctx)
}

// Create assigns the next id and appends a new task.
// The task is returned even when the save hook fails.
func (r *Repository) Create(ctx context.Context, in domain.NewTask) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	task := domain.Task{
		ID:           domain.FormatID(r.seq),
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		List:         in.List,
		Tags:         in.Tags,
		Priority:     in.Priority,
		Due:          in.Due,
		Estimate:     in.Estimate,
		Repeat:       in.Repeat,
		Color:        in.Color,
		Dependencies: in.Dependencies,
		Status:       in.Status,
		CreatedAt:    now,
	}
	task = r.withDefaults(task).Clone()
	if task.IsDone() {
		task.CompletedAt = &now
	}
	r.seq++

	r.tasks = append(r.tasks, task)
	return task.Clone(), r.persistLocked(ctx)
}

// Update applies a shallow patch. An unknown id changes nothing and returns
// a not found error. completedAt is re-derived from the resulting status.
func (r *Repository) Update(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return domain.Task{}, errors.NewNotFoundError("task", id)
	}

	task := &r.tasks[i]
	patch.Apply(task)

	if task.IsDone() {
		if task.CompletedAt == nil {
			now := r.now()
			task.CompletedAt = &now
		}
	} else {
		task.CompletedAt = nil
	}

	return task.Clone(), r.persistLocked(ctx)
}

// Delete removes the task. Unknown ids are a no-op. Dependency references
// held by other tasks are left dangling.
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return nil
	}
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	return r.persistLocked(ctx)
}

// MarkNotified sets a reminder flag. It reports false when the flag was
// already set, so a caller that notifies only on true fires at most once.
func (r *Repository) MarkNotified(ctx context.Context, id string, kind domain.NotificationKind) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return false, errors.NewNotFoundError("task", id)
	}

	task := &r.tasks[i]
	switch kind {
	case domain.NotificationOverdue:
		if task.OverdueNotified {
			return false, nil
		}
		task.OverdueNotified = true
	default:
		if task.Notified {
			return false, nil
		}
		task.Notified = true
	}
	return true, r.persistLocked(ctx)
}

// SetReminders stores the reminders preference.
func (r *Repository) SetReminders(ctx context.Context, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings.Reminders = enabled
	return r.persistLocked(ctx)
}

// Settings returns the current settings.
func (r *Repository) Settings() domain.Settings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings
}

// Get returns a copy of the task with id.
func (r *Repository) Get(id string) (domain.Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return domain.Task{}, false
	}
	return r.tasks[i].Clone(), true
}

// List returns copies of all tasks in insertion order.
func (r *Repository) List() []domain.Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Task, len(r.tasks))
	for i, t := range r.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Snapshot returns a copy of the full state.
func (r *Repository) Snapshot() domain.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Repository) snapshotLocked() domain.State {
	return domain.State{Tasks: r.tasks, Seq: r.seq, Settings: r.settings}.Clone()
}

func (r *Repository) replaceLocked(state domain.State) {
	tasks := make([]domain.Task, len(state.Tasks))
	for i, t := range state.Tasks {
		tasks[i] = t.Clone()
	}
	r.tasks = tasks
	r.seq = domain.SafeSeq(state.Seq, tasks)
	r.settings = state.Settings
}

func (r *Repository) persistLocked(ctx context.Context) error {
	if r.save == nil {
		return nil
	}
	return r.save(ctx, r.snapshotLocked())
}

func (r *Repository) indexLocked(id string) int {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Repository) withDefaults(t domain.Task) domain.Task {
	if t.Title == "" {
		t.Title = r.defaults.Title
	}
	if t.List == "" {
		t.List = r.defaults.List
	}
	if !t.Priority.IsValid() {
		t.Priority = r.defaults.Priority
	}
	if t.Color == "" {
		t.Color = r.defaults.Color
	}
	if !t.Repeat.IsValid() {
		t.Repeat = domain.RepeatNone
	}
	if !t.Status.IsValid() {
		t.Status = domain.StatusTodo
	}
	return t
}
