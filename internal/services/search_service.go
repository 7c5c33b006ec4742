package services

import (
	"sort"
	"strings"
	"time"

	"focusflow/internal/domain"
)

// searchServiceImpl implements the SearchService interface
type searchServiceImpl struct {
	timeService TimeService
}

// NewSearchService creates a new SearchService instance
func NewSearchService(timeService TimeService) SearchService {
	return &searchServiceImpl{
		timeService: timeService,
	}
}

// matchesTextFilter checks the lowercased title, description, tags and list
func (s *searchServiceImpl) matchesTextFilter(task domain.Task, textFilter string) bool {
	needle := strings.ToLower(strings.TrimSpace(textFilter))
	if needle == "" {
		return true
	}
	haystack := strings.ToLower(strings.Join([]string{
		task.Title,
		task.Description,
		strings.Join(task.Tags, " "),
		task.List,
	}, " "))
	return strings.Contains(haystack, needle)
}

// matchesDueBucket checks the task against a due bucket relative to now
func (s *searchServiceImpl) matchesDueBucket(task domain.Task, bucket domain.DueBucket, now time.Time) bool {
	switch bucket {
	case domain.DueAny:
		return true
	case domain.DueOverdue:
		return task.IsOverdue(now)
	case domain.DueToday:
		return task.Due != nil && s.timeService.IsSameDay(now, *task.Due)
	case domain.DueThisWeek:
		return task.Due != nil && s.timeService.WeekRange(now).Contains(*task.Due)
	}
	return false
}

// Filter returns the tasks matching every set criterion, in input order
func (s *searchServiceImpl) Filter(tasks []domain.Task, filter domain.Filter, now time.Time) []domain.Task {
	filtered := make([]domain.Task, 0, len(tasks))

	for _, task := range tasks {
		if !s.matchesTextFilter(task, filter.Text) {
			continue
		}
		if filter.List != "" && task.List != filter.List {
			continue
		}
		if filter.Priority != nil && task.Priority != *filter.Priority {
			continue
		}
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		if !s.matchesDueBucket(task, filter.Due, now) {
			continue
		}
		filtered = append(filtered, task)
	}

	return filtered
}

// Sort returns a sorted copy. Ties keep their input order and tasks
// without a due date always sort last.
func (s *searchServiceImpl) Sort(tasks []domain.Task, mode domain.SortMode) []domain.Task {
	// Make a copy to avoid modifying the original
	sorted := make([]domain.Task, len(tasks))
	copy(sorted, tasks)

	switch mode {
	case domain.SortPriority:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Priority.Rank() < sorted[j].Priority.Rank()
		})
	case domain.SortDueAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return dueBefore(sorted[i].Due, sorted[j].Due, false)
		})
	case domain.SortDueDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return dueBefore(sorted[i].Due, sorted[j].Due, true)
		})
	case domain.SortCreated:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		})
	}

	return sorted
}

func dueBefore(a, b *time.Time, desc bool) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	case desc:
		return a.After(*b)
	default:
		return a.Before(*b)
	}
}

// Board filters, sorts and groups tasks into the status columns
func (s *searchServiceImpl) Board(tasks []domain.Task, filter domain.Filter, mode domain.SortMode, now time.Time) []Column {
	visible := s.Sort(s.Filter(tasks, filter, now), mode)

	columns := make([]Column, len(domain.Statuses))
	index := make(map[domain.Status]int, len(domain.Statuses))
	for i, status := range domain.Statuses {
		columns[i] = Column{Status: status, Tasks: []domain.Task{}}
		index[status] = i
	}

	for _, task := range visible {
		if i, ok := index[task.Status]; ok {
			columns[i].Tasks = append(columns[i].Tasks, task)
		}
	}

	return columns
}

// UnmetDependencies counts dependencies that exist and are not done.
// Dangling references are ignored.
func (s *searchServiceImpl) UnmetDependencies(task domain.Task, all []domain.Task) int {
	byID := make(map[string]domain.Task, len(all))
	for _, t := range all {
		byID[t.ID] = t
	}

	unmet := 0
	for _, dep := range task.Dependencies {
		if t, ok := byID[dep]; ok && !t.IsDone() {
			unmet++
		}
	}
	return unmet
}
