package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusflow/internal/domain"
)

func floatPtr(f float64) *float64 {
	return &f
}

func setupReportingService(t *testing.T) ReportingService {
	t.Helper()
	return NewReportingService(NewTimeService(fixedClock(searchNow), ""))
}

func TestReportingService_Stats(t *testing.T) {
	tests := []struct {
		name     string
		tasks    []domain.Task
		expected Stats
	}{
		{
			name:     "should report zeros for an empty board",
			tasks:    nil,
			expected: Stats{},
		},
		{
			name:  "should count the fixture board",
			tasks: searchFixture(),
			// 0001 overdue+focus, 0002 focus, 0003 done
			expected: Stats{Total: 5, Done: 1, Overdue: 1, Focus: 2, DonePercent: 20, OverduePercent: 20, FocusPercent: 40},
		},
		{
			name: "should round percentages",
			tasks: []domain.Task{
				{ID: "1", Status: domain.StatusDone},
				{ID: "2", Status: domain.StatusTodo},
				{ID: "3", Status: domain.StatusTodo},
			},
			expected: Stats{Total: 3, Done: 1, DonePercent: 33},
		},
		{
			name: "should not count done critical tasks as focus",
			tasks: []domain.Task{
				{ID: "1", Status: domain.StatusDone, Priority: domain.PriorityCritical},
				{ID: "2", Status: domain.StatusTodo, Priority: domain.PriorityCritical},
			},
			expected: Stats{Total: 2, Done: 1, Focus: 1, DonePercent: 50, FocusPercent: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := setupReportingService(t)

			result := service.Stats(tt.tasks, searchNow)

			require.NotNil(t, result)
			assert.Equal(t, tt.expected, *result)
		})
	}
}

func TestReportingService_Insights(t *testing.T) {
	service := setupReportingService(t)
	tasks := append(searchFixture(),
		domain.Task{ID: "0006", Title: "Write chapter", Status: domain.StatusTodo, Estimate: floatPtr(3)},
		domain.Task{ID: "0007", Title: "Refactor", Status: domain.StatusDoing, Estimate: floatPtr(2)},
		domain.Task{ID: "0008", Title: "Short", Status: domain.StatusTodo, Estimate: floatPtr(1.5)},
		domain.Task{ID: "0009", Title: "Done long", Status: domain.StatusDone, Estimate: floatPtr(8)},
		domain.Task{ID: "0010", Title: "Design", Status: domain.StatusTodo, Estimate: floatPtr(4)},
		domain.Task{ID: "0011", Title: "Fourth long", Status: domain.StatusTodo, Estimate: floatPtr(5)},
	)

	insights := service.Insights(tasks, searchNow)

	assert.Equal(t, 2, insights.Today)
	assert.Equal(t, 1, insights.Overdue)
	assert.Equal(t, []string{"Write chapter", "Refactor", "Design"}, insights.DeepWork)
	assert.Equal(t, 1, insights.Blocked)
	assert.Equal(t, []string{
		"Today: 2 task(s)",
		"Overdue: 1",
		"Deep work candidates: Write chapter, Refactor, Design",
		"Blocked: 1",
	}, insights.Lines())
}

func TestInsights_LinesOmitEmpty(t *testing.T) {
	insights := &Insights{DeepWork: []string{}}

	assert.Equal(t, []string{"Today: 0 task(s)", "Overdue: 0"}, insights.Lines())
}

func TestReportingService_TodayUsesCalendarDate(t *testing.T) {
	service := setupReportingService(t)
	late := time.Date(2025, 1, 1, 23, 59, 0, 0, time.UTC)
	early := time.Date(2025, 1, 2, 0, 1, 0, 0, time.UTC)

	insights := service.Insights([]domain.Task{
		{ID: "1", Status: domain.StatusTodo, Due: &late},
		{ID: "2", Status: domain.StatusTodo, Due: &early},
	}, searchNow)

	assert.Equal(t, 1, insights.Today)
}
