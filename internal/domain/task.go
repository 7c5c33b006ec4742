package domain

import (
	"strings"
	"time"
)

// Default field values applied when a task is created.
const (
	DefaultTitle    = "(untitled)"
	DefaultList     = "Inbox"
	DefaultColor    = "#3b82f6"
	DefaultPriority = PriorityLow
)

// Priority is the task urgency. P0 is the most urgent.
type Priority string

const (
	PriorityCritical Priority = "P0"
	PriorityHigh     Priority = "P1"
	PriorityMedium   Priority = "P2"
	PriorityLow      Priority = "P3"
)

// Priorities lists every priority in rank order.
var Priorities = []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}

// Rank returns the sort rank of the priority; unknown values sort last.
func (p Priority) Rank() int {
	for i, candidate := range Priorities {
		if candidate == p {
			return i
		}
	}
	return len(Priorities)
}

// IsValid reports whether p is one of P0..P3.
func (p Priority) IsValid() bool {
	return p.Rank() < len(Priorities)
}

// ParsePriority accepts "P0".."P3" in any case.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToUpper(strings.TrimSpace(s)))
	return p, p.IsValid()
}

// Status is the board column a task sits in.
type Status string

const (
	StatusTodo    Status = "todo"
	StatusDoing   Status = "doing"
	StatusDone    Status = "done"
	StatusBlocked Status = "blocked"
)

// Statuses lists the board columns in display order.
var Statuses = []Status{StatusTodo, StatusDoing, StatusDone, StatusBlocked}

// IsValid reports whether s is a known column.
func (s Status) IsValid() bool {
	for _, candidate := range Statuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStatus accepts a column name in any case.
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	return st, st.IsValid()
}

// Repeat is the recurrence cadence. The zero value means no recurrence.
type Repeat string

const (
	RepeatNone    Repeat = ""
	RepeatDaily   Repeat = "daily"
	RepeatWeekly  Repeat = "weekly"
	RepeatMonthly Repeat = "monthly"
)

// IsValid reports whether r is a known cadence, including none.
func (r Repeat) IsValid() bool {
	switch r {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly:
		return true
	}
	return false
}

// ParseRepeat accepts a cadence name; "none" maps to RepeatNone.
func ParseRepeat(s string) (Repeat, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "none" {
		return RepeatNone, true
	}
	r := Repeat(v)
	return r, r.IsValid()
}

// Task represents a card on the board.
// This is a pure domain model without storage-specific concerns.
type Task struct {
	ID              string
	Title           string
	Description     string
	List            string
	Tags            []string
	Priority        Priority
	Due             *time.Time
	Estimate        *float64
	Repeat          Repeat
	Color           string
	Dependencies    []string
	Status          Status
	CreatedAt       time.Time
	CompletedAt     *time.Time
	Notified        bool
	OverdueNotified bool
}

// IsDone reports whether the task sits in the done column.
func (t Task) IsDone() bool {
	return t.Status == StatusDone
}

// IsOverdue reports whether the task is past due and not done.
func (t Task) IsOverdue(now time.Time) bool {
	return t.Due != nil && t.Due.Before(now) && !t.IsDone()
}

// IsRecurring reports whether completing the task spawns a successor.
func (t Task) IsRecurring() bool {
	return t.Repeat != RepeatNone && t.Due != nil
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}

// Clone returns a deep copy so callers cannot alias repository state.
func (t Task) Clone() Task {
	c := t
	c.Tags = cloneStrings(t.Tags)
	c.Dependencies = cloneStrings(t.Dependencies)
	c.Due = cloneTime(t.Due)
	c.CompletedAt = cloneTime(t.CompletedAt)
	if t.Estimate != nil {
		v := *t.Estimate
		c.Estimate = &v
	}
	return c
}

// NewTask is the create payload. Zero values fall back to the defaults.
type NewTask struct {
	Title        string
	Description  string
	List         string
	Tags         []string
	Priority     Priority
	Due          *time.Time
	Estimate     *float64
	Repeat       Repeat
	Color        string
	Dependencies []string
	Status       Status
}

// TaskPatch is a shallow partial update. Nil fields are left untouched;
// slice fields replace the previous value wholesale.
type TaskPatch struct {
	Title         *string
	Description   *string
	List          *string
	Tags          *[]string
	Priority      *Priority
	Due           *time.Time
	ClearDue      bool
	Estimate      *float64
	ClearEstimate bool
	Repeat        *Repeat
	Color         *string
	Dependencies  *[]string
	Status        *Status
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.List == nil && p.Tags == nil &&
		p.Priority == nil && p.Due == nil && !p.ClearDue && p.Estimate == nil &&
		!p.ClearEstimate && p.Repeat == nil && p.Color == nil && p.Dependencies == nil &&
		p.Status == nil
}

// Apply overwrites the fields present in the patch.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.List != nil {
		t.List = *p.List
	}
	if p.Tags != nil {
		t.Tags = cloneStrings(*p.Tags)
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.ClearDue {
		t.Due = nil
	} else if p.Due != nil {
		t.Due = cloneTime(p.Due)
	}
	if p.ClearEstimate {
		t.Estimate = nil
	} else if p.Estimate != nil {
		v := *p.Estimate
		t.Estimate = &v
	}
	if p.Repeat != nil {
		t.Repeat = *p.Repeat
	}
	if p.Color != nil {
		t.Color = *p.Color
	}
	if p.Dependencies != nil {
		t.Dependencies = cloneStrings(*p.Dependencies)
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
}

// StatusPatch is shorthand for a patch that only moves the task.
func StatusPatch(s Status) TaskPatch {
	return TaskPatch{Status: &s}
}

// NotificationKind selects which reminder flag to set.
type NotificationKind int

const (
	NotificationUpcoming NotificationKind = iota
	NotificationOverdue
)

// Settings holds user preferences persisted with the board.
type Settings struct {
	Reminders bool
}

// State is everything persisted: the tasks, the id counter and settings.
type State struct {
	Tasks    []Task
	Seq      int
	Settings Settings
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	tasks := make([]Task, len(s.Tasks))
	for i, t := range s.Tasks {
		tasks[i] = t.Clone()
	}
	return State{Tasks: tasks, Seq: s.Seq, Settings: s.Settings}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
