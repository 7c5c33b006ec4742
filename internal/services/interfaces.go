package services

import (
	"context"
	"io"
	"time"

	"focusflow/internal/domain"
)

// TimeRange represents a time period with start and end times
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the range, both ends included.
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// CreateRequest is the form create payload. The title is run through the
// quick-add parser; explicit fields win over parsed hints.
type CreateRequest struct {
	Title        string
	Description  string
	List         string
	Tags         []string
	Priority     *domain.Priority
	Due          *time.Time
	Estimate     *float64
	Repeat       domain.Repeat
	Color        string
	Dependencies []string
}

// EditRequest changes the fields that are set. Omitted fields are unchanged.
type EditRequest struct {
	Title         *string
	Description   *string
	List          *string
	Tags          *[]string
	Priority      *domain.Priority
	Due           *time.Time
	ClearDue      bool
	Estimate      *float64
	ClearEstimate bool
	Repeat        *domain.Repeat
	Color         *string
	Dependencies  *[]string
	Status        *domain.Status
}

// Patch converts the request to a repository patch.
func (r EditRequest) Patch() domain.TaskPatch {
	return domain.TaskPatch{
		Title:         r.Title,
		Description:   r.Description,
		List:          r.List,
		Tags:          r.Tags,
		Priority:      r.Priority,
		Due:           r.Due,
		ClearDue:      r.ClearDue,
		Estimate:      r.Estimate,
		ClearEstimate: r.ClearEstimate,
		Repeat:        r.Repeat,
		Color:         r.Color,
		Dependencies:  r.Dependencies,
		Status:        r.Status,
	}
}

// TaskChange is the result of a status change. Spawned is the successor
// created when a recurring task was completed.
type TaskChange struct {
	Task    *domain.Task `json:"task"`
	Spawned *domain.Task `json:"spawned,omitempty"`
}

// Column is one status column of the board.
type Column struct {
	Status domain.Status `json:"status"`
	Tasks  []domain.Task `json:"tasks"`
}

// Stats is the aggregate progress summary.
type Stats struct {
	Total          int `json:"total"`
	Done           int `json:"done"`
	Overdue        int `json:"overdue"`
	Focus          int `json:"focus"`
	DonePercent    int `json:"done_percent"`
	OverduePercent int `json:"overdue_percent"`
	FocusPercent   int `json:"focus_percent"`
}

// Insights are short advisory figures about the board.
type Insights struct {
	Today    int      `json:"today"`
	Overdue  int      `json:"overdue"`
	DeepWork []string `json:"deep_work"`
	Blocked  int      `json:"blocked"`
}

// ScanResult reports what one reminder scan sent.
type ScanResult struct {
	Upcoming []string `json:"upcoming"`
	Overdue  []string `json:"overdue"`
}

// Sent returns the number of notifications delivered or attempted.
func (r ScanResult) Sent() int {
	return len(r.Upcoming) + len(r.Overdue)
}

// TaskRepository is the task collection the services mutate.
type TaskRepository interface {
	Create(ctx context.Context, in domain.NewTask) (domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error)
	Delete(ctx context.Context, id string) error
	Get(id string) (domain.Task, bool)
	List() []domain.Task
	Snapshot() domain.State
	Reset(ctx context.Context) error
	Replace(ctx context.Context, state domain.State) error
	MarkNotified(ctx context.Context, id string, kind domain.NotificationKind) (bool, error)
	SetReminders(ctx context.Context, enabled bool) error
	Settings() domain.Settings
}

// Notifier delivers reminder alerts.
type Notifier interface {
	// RequestPermission asks whether alerts may be shown.
	RequestPermission(ctx context.Context) (bool, error)
	Notify(ctx context.Context, title, body string) error
}

// TranscriptSource produces raw utterances. The channel is closed when the
// source has nothing more to say.
type TranscriptSource interface {
	Transcripts(ctx context.Context) (<-chan string, error)
}

// TimeService handles clock and due date calculations
type TimeService interface {
	Now() time.Time
	StartOfDay(t time.Time) time.Time
	IsSameDay(a, b time.Time) bool
	WeekRange(now time.Time) TimeRange
	FormatTime(t time.Time) string
	HumanDue(due *time.Time, now time.Time) string
	NextOccurrence(due time.Time, repeat domain.Repeat) (time.Time, bool)
}

// TaskService handles task lifecycle and workflow operations
type TaskService interface {
	Create(ctx context.Context, req CreateRequest) (*domain.Task, error)
	QuickAdd(ctx context.Context, text string) (*domain.Task, error)
	Edit(ctx context.Context, id string, req EditRequest) (*domain.Task, error)
	SetStatus(ctx context.Context, id string, status domain.Status) (*TaskChange, error)
	Complete(ctx context.Context, id string) (*TaskChange, error)
	ToggleDone(ctx context.Context, id string) (*TaskChange, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context) []domain.Task
	Reset(ctx context.Context) error
}

// SearchService is the read-only query surface over a task collection
type SearchService interface {
	Filter(tasks []domain.Task, filter domain.Filter, now time.Time) []domain.Task
	Sort(tasks []domain.Task, mode domain.SortMode) []domain.Task
	Board(tasks []domain.Task, filter domain.Filter, mode domain.SortMode, now time.Time) []Column
	UnmetDependencies(task domain.Task, all []domain.Task) int
}

// ReportingService handles aggregate progress figures
type ReportingService interface {
	Stats(tasks []domain.Task, now time.Time) *Stats
	Insights(tasks []domain.Task, now time.Time) *Insights
}

// ReminderService sends due-soon and overdue alerts
type ReminderService interface {
	Enable(ctx context.Context) error
	Disable(ctx context.Context) error
	Enabled() bool
	Scan(ctx context.Context, now time.Time) (*ScanResult, error)
	Start(ctx context.Context) error
	Stop()
}

// TransferService handles bulk export and import of the board
type TransferService interface {
	Export(ctx context.Context, w io.Writer) error
	Import(ctx context.Context, r io.Reader) (int, error)
}

// VoiceService turns utterances into quick-add tasks
type VoiceService interface {
	Capture(ctx context.Context, source TranscriptSource) ([]domain.Task, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TimeService      TimeService
	TaskService      TaskService
	SearchService    SearchService
	ReportingService ReportingService
	ReminderService  ReminderService
	TransferService  TransferService
	VoiceService     VoiceService
}
