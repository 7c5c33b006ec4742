package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Priority
		ok       bool
	}{
		{"upper case", "P0", PriorityCritical, true},
		{"lower case", "p2", PriorityMedium, true},
		{"padded", " P3 ", PriorityLow, true},
		{"out of range", "P4", Priority("P4"), false},
		{"empty", "", Priority(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := ParsePriority(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestPriority_Rank(t *testing.T) {
	assert.Equal(t, 0, PriorityCritical.Rank())
	assert.Equal(t, 3, PriorityLow.Rank())
	assert.Equal(t, 4, Priority("bogus").Rank())
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected Status
		ok       bool
	}{
		{"todo", StatusTodo, true},
		{"DOING", StatusDoing, true},
		{"done", StatusDone, true},
		{"blocked", StatusBlocked, true},
		{"archived", Status("archived"), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s, ok := ParseStatus(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, s)
		})
	}
}

func TestParseRepeat(t *testing.T) {
	tests := []struct {
		input    string
		expected Repeat
		ok       bool
	}{
		{"", RepeatNone, true},
		{"none", RepeatNone, true},
		{"Daily", RepeatDaily, true},
		{"weekly", RepeatWeekly, true},
		{"monthly", RepeatMonthly, true},
		{"yearly", Repeat("yearly"), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, ok := ParseRepeat(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, r)
		})
	}
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name     string
		task     Task
		expected bool
	}{
		{"past due and open", Task{Due: &past, Status: StatusTodo}, true},
		{"past due but done", Task{Due: &past, Status: StatusDone}, false},
		{"future due", Task{Due: &future, Status: StatusTodo}, false},
		{"no due", Task{Status: StatusTodo}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.task.IsOverdue(now))
		})
	}
}

func TestTask_Clone(t *testing.T) {
	due := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	est := 2.5
	original := Task{ID: "0001", Tags: []string{"a"}, Dependencies: []string{"0002"}, Due: &due, Estimate: &est}

	clone := original.Clone()
	clone.Tags[0] = "changed"
	clone.Dependencies[0] = "changed"
	*clone.Due = due.Add(time.Hour)
	*clone.Estimate = 9

	assert.Equal(t, "a", original.Tags[0])
	assert.Equal(t, "0002", original.Dependencies[0])
	assert.True(t, original.Due.Equal(due))
	assert.Equal(t, 2.5, *original.Estimate)
}

func TestTaskPatch_Apply(t *testing.T) {
	due := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	est := 3.0

	tests := []struct {
		name   string
		patch  TaskPatch
		verify func(t *testing.T, task Task)
	}{
		{
			name:  "empty patch leaves task untouched",
			patch: TaskPatch{},
			verify: func(t *testing.T, task Task) {
				assert.Equal(t, "Write report", task.Title)
				assert.Equal(t, []string{"work", "q1"}, task.Tags)
				require.NotNil(t, task.Due)
			},
		},
		{
			name:  "tags replaced wholesale",
			patch: TaskPatch{Tags: &[]string{"home"}},
			verify: func(t *testing.T, task Task) {
				assert.Equal(t, []string{"home"}, task.Tags)
			},
		},
		{
			name:  "clear due",
			patch: TaskPatch{ClearDue: true},
			verify: func(t *testing.T, task Task) {
				assert.Nil(t, task.Due)
			},
		},
		{
			name:  "set estimate and status",
			patch: TaskPatch{Estimate: &est, Status: func() *Status { s := StatusDoing; return &s }()},
			verify: func(t *testing.T, task Task) {
				require.NotNil(t, task.Estimate)
				assert.Equal(t, 3.0, *task.Estimate)
				assert.Equal(t, StatusDoing, task.Status)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{Title: "Write report", Tags: []string{"work", "q1"}, Due: &due, Status: StatusTodo}
			tt.patch.Apply(&task)
			tt.verify(t, task)
		})
	}
}

func TestTaskPatch_IsEmpty(t *testing.T) {
	assert.True(t, TaskPatch{}.IsEmpty())
	assert.False(t, StatusPatch(StatusDone).IsEmpty())
	assert.False(t, TaskPatch{ClearDue: true}.IsEmpty())
}

func TestParseDueBucket(t *testing.T) {
	b, ok := ParseDueBucket("week")
	assert.True(t, ok)
	assert.Equal(t, DueThisWeek, b)

	_, ok = ParseDueBucket("someday")
	assert.False(t, ok)
}
