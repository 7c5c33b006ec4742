package domain

import (
	"fmt"
	"strconv"

	"focusflow/internal/storage"
)

// TaskMapper handles conversion between domain and storage Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToRecord converts a domain Task to a storage record.
func (m *TaskMapper) ToRecord(task Task) storage.TaskRecord {
	return storage.TaskRecord{
		ID:              task.ID,
		Title:           task.Title,
		Desc:            task.Description,
		List:            task.List,
		Tags:            cloneStrings(task.Tags),
		Priority:        string(task.Priority),
		Due:             storage.FormatTimePtr(task.Due),
		Estimate:        task.Clone().Estimate,
		Repeat:          string(task.Repeat),
		Color:           task.Color,
		Deps:            cloneStrings(task.Dependencies),
		Status:          string(task.Status),
		CreatedAt:       storage.FormatTime(task.CreatedAt),
		CompletedAt:     storage.FormatTimePtr(task.CompletedAt),
		Notified:        task.Notified,
		OverdueNotified: task.OverdueNotified,
	}
}

// FromRecord converts a storage record to a domain Task. Missing fields
// take the create defaults so hand-edited backups still load.
func (m *TaskMapper) FromRecord(rec storage.TaskRecord) (Task, error) {
	due, err := storage.ParseTimePtr(rec.Due)
	if err != nil {
		return Task{}, fmt.Errorf("task %s: due: %w", rec.ID, err)
	}
	completedAt, err := storage.ParseTimePtr(rec.CompletedAt)
	if err != nil {
		return Task{}, fmt.Errorf("task %s: completedAt: %w", rec.ID, err)
	}
	createdAt, err := storage.ParseTimePtr(&rec.CreatedAt)
	if err != nil {
		return Task{}, fmt.Errorf("task %s: createdAt: %w", rec.ID, err)
	}

	task := Task{
		ID:              rec.ID,
		Title:           rec.Title,
		Description:     rec.Desc,
		List:            rec.List,
		Tags:            cloneStrings(rec.Tags),
		Priority:        Priority(rec.Priority),
		Due:             due,
		Repeat:          Repeat(rec.Repeat),
		Color:           rec.Color,
		Dependencies:    cloneStrings(rec.Deps),
		Status:          Status(rec.Status),
		CompletedAt:     completedAt,
		Notified:        rec.Notified,
		OverdueNotified: rec.OverdueNotified,
	}
	if rec.Estimate != nil {
		v := *rec.Estimate
		task.Estimate = &v
	}
	if createdAt != nil {
		task.CreatedAt = *createdAt
	}
	if task.Title == "" {
		task.Title = DefaultTitle
	}
	if task.List == "" {
		task.List = DefaultList
	}
	if !task.Priority.IsValid() {
		task.Priority = DefaultPriority
	}
	if !task.Status.IsValid() {
		task.Status = StatusTodo
	}
	if !task.Repeat.IsValid() {
		task.Repeat = RepeatNone
	}
	if task.Color == "" {
		task.Color = DefaultColor
	}
	return task, nil
}

// ToRecordSlice converts a slice of domain Tasks to storage records.
func (m *TaskMapper) ToRecordSlice(tasks []Task) []storage.TaskRecord {
	records := make([]storage.TaskRecord, len(tasks))
	for i, task := range tasks {
		records[i] = m.ToRecord(task)
	}
	return records
}

// FromRecordSlice converts a slice of storage records to domain Tasks.
func (m *TaskMapper) FromRecordSlice(records []storage.TaskRecord) ([]Task, error) {
	tasks := make([]Task, len(records))
	for i, rec := range records {
		task, err := m.FromRecord(rec)
		if err != nil {
			return nil, err
		}
		tasks[i] = task
	}
	return tasks, nil
}

// StateMapper handles conversion between domain State and the stored blob.
type StateMapper struct {
	tasks *TaskMapper
}

// NewStateMapper creates a new StateMapper instance.
func NewStateMapper(tasks *TaskMapper) *StateMapper {
	return &StateMapper{tasks: tasks}
}

// ToRecord converts the domain state to the stored blob.
func (m *StateMapper) ToRecord(state State) *storage.StateRecord {
	return &storage.StateRecord{
		Tasks:    m.tasks.ToRecordSlice(state.Tasks),
		Seq:      state.Seq,
		Settings: &storage.SettingsRecord{Reminders: state.Settings.Reminders},
	}
}

// FromRecord converts a stored blob to domain state. The sequence counter
// is raised past every numeric id present so ids are never reissued.
func (m *StateMapper) FromRecord(rec *storage.StateRecord, fallback Settings) (State, error) {
	tasks, err := m.tasks.FromRecordSlice(rec.Tasks)
	if err != nil {
		return State{}, err
	}

	settings := fallback
	if rec.Settings != nil {
		settings = Settings{Reminders: rec.Settings.Reminders}
	}
	return State{
		Tasks:    tasks,
		Seq:      SafeSeq(rec.Seq, tasks),
		Settings: settings,
	}, nil
}

// SafeSeq returns max(seq, highest numeric id + 1, 1).
func SafeSeq(seq int, tasks []Task) int {
	next := seq
	for _, t := range tasks {
		n, err := strconv.Atoi(t.ID)
		if err != nil {
			continue
		}
		if n+1 > next {
			next = n + 1
		}
	}
	if next < 1 {
		next = 1
	}
	return next
}

// FormatID renders a sequence number as a task id.
func FormatID(seq int) string {
	return fmt.Sprintf("%04d", seq)
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Task  *TaskMapper
	State *StateMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	tasks := NewTaskMapper()
	return &Mapper{
		Task:  tasks,
		State: NewStateMapper(tasks),
	}
}
