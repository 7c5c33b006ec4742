package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"focusflow/internal/domain"
)

// DeepWorkHours is the estimate at which an open task counts as deep work.
const DeepWorkHours = 2.0

const deepWorkLimit = 3

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	timeService TimeService
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(timeService TimeService) ReportingService {
	return &reportingServiceImpl{
		timeService: timeService,
	}
}

// Stats counts total, done, overdue and focus (open P0/P1) tasks
func (r *reportingServiceImpl) Stats(tasks []domain.Task, now time.Time) *Stats {
	stats := &Stats{Total: len(tasks)}

	for _, task := range tasks {
		if task.IsDone() {
			stats.Done++
			continue
		}
		if task.IsOverdue(now) {
			stats.Overdue++
		}
		if task.Priority == domain.PriorityCritical || task.Priority == domain.PriorityHigh {
			stats.Focus++
		}
	}

	stats.DonePercent = percent(stats.Done, stats.Total)
	stats.OverduePercent = percent(stats.Overdue, stats.Total)
	stats.FocusPercent = percent(stats.Focus, stats.Total)
	return stats
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// Insights collects the advisory figures shown next to the stats
func (r *reportingServiceImpl) Insights(tasks []domain.Task, now time.Time) *Insights {
	insights := &Insights{DeepWork: []string{}}

	for _, task := range tasks {
		if task.Status == domain.StatusBlocked {
			insights.Blocked++
		}
		if task.IsDone() {
			continue
		}
		if task.Due != nil && r.timeService.IsSameDay(now, *task.Due) {
			insights.Today++
		}
		if task.IsOverdue(now) {
			insights.Overdue++
		}
		if task.Estimate != nil && *task.Estimate >= DeepWorkHours && len(insights.DeepWork) < deepWorkLimit {
			insights.DeepWork = append(insights.DeepWork, task.Title)
		}
	}

	return insights
}

// Lines renders the insights as short display lines. Deep work and blocked
// lines are only present when non-empty.
func (i *Insights) Lines() []string {
	lines := []string{
		fmt.Sprintf("Today: %d task(s)", i.Today),
		fmt.Sprintf("Overdue: %d", i.Overdue),
	}
	if len(i.DeepWork) > 0 {
		lines = append(lines, "Deep work candidates: "+strings.Join(i.DeepWork, ", "))
	}
	if i.Blocked > 0 {
		lines = append(lines, fmt.Sprintf("Blocked: %d", i.Blocked))
	}
	return lines
}
