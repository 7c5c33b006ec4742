package api

import (
	"context"
	"io"

	"go.uber.org/zap"

	"focusflow/internal/domain"
	"focusflow/internal/services"
	"focusflow/internal/storage"
)

// TaskView is a task with the figures the board shows next to it
type TaskView struct {
	Task              domain.Task `json:"task"`
	DueText           string      `json:"due_text,omitempty"`
	Overdue           bool        `json:"overdue"`
	UnmetDependencies int         `json:"unmet_dependencies"`
}

// BoardColumn is one status column of task views
type BoardColumn struct {
	Status domain.Status `json:"status"`
	Tasks  []TaskView    `json:"tasks"`
}

// Dashboard bundles the progress figures shown above the board
type Dashboard struct {
	Stats    *services.Stats    `json:"stats"`
	Insights *services.Insights `json:"insights"`
}

// API is the business facade used by the command line
type API interface {
	// ========== Task Workflows ==========

	// CreateTask creates a task from form fields, parsing hints from the title
	CreateTask(ctx context.Context, req services.CreateRequest) (*domain.Task, error)

	// QuickAdd creates a task from a natural-language phrase
	QuickAdd(ctx context.Context, text string) (*domain.Task, error)

	// CaptureVoice quick-adds every utterance of the source
	CaptureVoice(ctx context.Context, source services.TranscriptSource) ([]domain.Task, error)

	// EditTask changes the fields set in req
	EditTask(ctx context.Context, id string, req services.EditRequest) (*domain.Task, error)

	// CompleteTask marks a task done, spawning the next occurrence of a recurring task
	CompleteTask(ctx context.Context, id string) (*services.TaskChange, error)

	// ToggleDone flips a task between done and todo, spawning recurring successors
	ToggleDone(ctx context.Context, id string) (*services.TaskChange, error)

	// MoveTask places a task in a status column without spawning
	MoveTask(ctx context.Context, id string, status domain.Status) (*services.TaskChange, error)

	// DeleteTask removes a task; unknown ids are ignored
	DeleteTask(ctx context.Context, id string) error

	// ResetBoard removes every task and restarts ids
	ResetBoard(ctx context.Context) error

	// ========== Query Operations ==========

	// GetTask returns a single task view by id
	GetTask(ctx context.Context, id string) (*TaskView, error)

	// ListTasks returns the filtered and sorted task views
	ListTasks(ctx context.Context, filter domain.Filter, mode domain.SortMode) ([]TaskView, error)

	// Board returns the filtered and sorted views grouped by status
	Board(ctx context.Context, filter domain.Filter, mode domain.SortMode) ([]BoardColumn, error)

	// GetDashboard returns stats and insights over the whole board
	GetDashboard(ctx context.Context) (*Dashboard, error)

	// ========== Transfer ==========

	Export(ctx context.Context, w io.Writer) error
	Import(ctx context.Context, r io.Reader) (int, error)

	// ========== Reminders ==========

	EnableReminders(ctx context.Context) error
	DisableReminders(ctx context.Context) error
	RemindersEnabled() bool

	// ScanReminders runs one reminder pass now
	ScanReminders(ctx context.Context) (*services.ScanResult, error)

	// RunReminders scans on the configured interval until ctx is done
	RunReminders(ctx context.Context) error

	// Close stops background work and releases the store
	Close() error
}

// businessAPIImpl implements the API interface
type businessAPIImpl struct {
	services *services.ServiceContainer
	store    storage.Store
	logger   *zap.SugaredLogger
}

func newBusinessAPI(container *services.ServiceContainer, store storage.Store, logger *zap.SugaredLogger) API {
	return &businessAPIImpl{
		services: container,
		store:    store,
		logger:   logger,
	}
}

// ========== Task Workflows ==========

func (b *businessAPIImpl) CreateTask(ctx context.Context, req services.CreateRequest) (*domain.Task, error) {
	return b.services.TaskService.Create(ctx, req)
}

func (b *businessAPIImpl) QuickAdd(ctx context.Context, text string) (*domain.Task, error) {
	return b.services.TaskService.QuickAdd(ctx, text)
}

func (b *businessAPIImpl) CaptureVoice(ctx context.Context, source services.TranscriptSource) ([]domain.Task, error) {
	return b.services.VoiceService.Capture(ctx, source)
}

func (b *businessAPIImpl) EditTask(ctx context.Context, id string, req services.EditRequest) (*domain.Task, error) {
	return b.services.TaskService.Edit(ctx, id, req)
}

func (b *businessAPIImpl) CompleteTask(ctx context.Context, id string) (*services.TaskChange, error) {
	return b.services.TaskService.Complete(ctx, id)
}

func (b *businessAPIImpl) ToggleDone(ctx context.Context, id string) (*services.TaskChange, error) {
	return b.services.TaskService.ToggleDone(ctx, id)
}

func (b *businessAPIImpl) MoveTask(ctx context.Context, id string, status domain.Status) (*services.TaskChange, error) {
	return b.services.TaskService.SetStatus(ctx, id, status)
}

func (b *businessAPIImpl) DeleteTask(ctx context.Context, id string) error {
	return b.services.TaskService.Delete(ctx, id)
}

func (b *businessAPIImpl) ResetBoard(ctx context.Context) error {
	return b.services.TaskService.Reset(ctx)
}

// ========== Query Operations ==========

func (b *businessAPIImpl) GetTask(ctx context.Context, id string) (*TaskView, error) {
	task, err := b.services.TaskService.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	view := b.toView(*task, b.services.TaskService.List(ctx))
	return &view, nil
}

func (b *businessAPIImpl) ListTasks(ctx context.Context, filter domain.Filter, mode domain.SortMode) ([]TaskView, error) {
	all := b.services.TaskService.List(ctx)
	now := b.services.TimeService.Now()

	search := b.services.SearchService
	tasks := search.Sort(search.Filter(all, filter, now), mode)
	return b.toViews(tasks, all), nil
}

func (b *businessAPIImpl) Board(ctx context.Context, filter domain.Filter, mode domain.SortMode) ([]BoardColumn, error) {
	all := b.services.TaskService.List(ctx)
	now := b.services.TimeService.Now()

	columns := b.services.SearchService.Board(all, filter, mode, now)
	board := make([]BoardColumn, len(columns))
	for i, col := range columns {
		board[i] = BoardColumn{
			Status: col.Status,
			Tasks:  b.toViews(col.Tasks, all),
		}
	}
	return board, nil
}

func (b *businessAPIImpl) GetDashboard(ctx context.Context) (*Dashboard, error) {
	all := b.services.TaskService.List(ctx)
	now := b.services.TimeService.Now()

	return &Dashboard{
		Stats:    b.services.ReportingService.Stats(all, now),
		Insights: b.services.ReportingService.Insights(all, now),
	}, nil
}

func (b *businessAPIImpl) toViews(tasks, all []domain.Task) []TaskView {
	views := make([]TaskView, len(tasks))
	for i, task := range tasks {
		views[i] = b.toView(task, all)
	}
	return views
}

func (b *businessAPIImpl) toView(task domain.Task, all []domain.Task) TaskView {
	now := b.services.TimeService.Now()
	return TaskView{
		Task:              task,
		DueText:           b.services.TimeService.HumanDue(task.Due, now),
		Overdue:           task.IsOverdue(now),
		UnmetDependencies: b.services.SearchService.UnmetDependencies(task, all),
	}
}

// ========== Transfer ==========

func (b *businessAPIImpl) Export(ctx context.Context, w io.Writer) error {
	return b.services.TransferService.Export(ctx, w)
}

func (b *businessAPIImpl) Import(ctx context.Context, r io.Reader) (int, error) {
	return b.services.TransferService.Import(ctx, r)
}

// ========== Reminders ==========

func (b *businessAPIImpl) EnableReminders(ctx context.Context) error {
	return b.services.ReminderService.Enable(ctx)
}

func (b *businessAPIImpl) DisableReminders(ctx context.Context) error {
	return b.services.ReminderService.Disable(ctx)
}

func (b *businessAPIImpl) RemindersEnabled() bool {
	return b.services.ReminderService.Enabled()
}

func (b *businessAPIImpl) ScanReminders(ctx context.Context) (*services.ScanResult, error) {
	return b.services.ReminderService.Scan(ctx, b.services.TimeService.Now())
}

func (b *businessAPIImpl) RunReminders(ctx context.Context) error {
	reminders := b.services.ReminderService
	if err := reminders.Start(ctx); err != nil {
		return err
	}
	defer reminders.Stop()

	<-ctx.Done()
	return nil
}

func (b *businessAPIImpl) Close() error {
	b.services.ReminderService.Stop()
	b.logger.Debugw("closing board")
	if b.store == nil {
		return nil
	}
	return b.store.Close()
}
