package domain

import "strings"

// DueBucket is a categorical due-date filter.
type DueBucket string

const (
	DueAny      DueBucket = ""
	DueOverdue  DueBucket = "overdue"
	DueToday    DueBucket = "today"
	DueThisWeek DueBucket = "this-week"
)

// ParseDueBucket accepts a bucket name; "week" is an alias for this-week.
func ParseDueBucket(s string) (DueBucket, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DueAny, true
	case "overdue":
		return DueOverdue, true
	case "today":
		return DueToday, true
	case "this-week", "week":
		return DueThisWeek, true
	}
	return DueAny, false
}

// SortMode orders a task listing.
type SortMode string

const (
	SortNone     SortMode = ""
	SortPriority SortMode = "priority"
	SortDueAsc   SortMode = "due-asc"
	SortDueDesc  SortMode = "due-desc"
	SortCreated  SortMode = "created"
)

// ParseSortMode accepts a sort mode name.
func ParseSortMode(s string) (SortMode, bool) {
	m := SortMode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case SortNone, SortPriority, SortDueAsc, SortDueDesc, SortCreated:
		return m, true
	}
	return SortNone, false
}

// Filter holds the query criteria applied to a task listing.
// Empty fields match everything.
type Filter struct {
	Text     string
	List     string
	Priority *Priority
	Status   *Status
	Due      DueBucket
}

// IsEmpty reports whether the filter matches every task.
func (f Filter) IsEmpty() bool {
	return strings.TrimSpace(f.Text) == "" && f.List == "" && f.Priority == nil &&
		f.Status == nil && f.Due == DueAny
}
