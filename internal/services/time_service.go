package services

import (
	"math"
	"time"

	"focusflow/internal/domain"
)

// DefaultTimeFormat is the layout used for due dates when none is configured.
const DefaultTimeFormat = "2006-01-02 15:04"

const day = 24 * time.Hour

// timeServiceImpl implements the TimeService interface
type timeServiceImpl struct {
	now    func() time.Time
	format string
}

// NewTimeService creates a new TimeService instance. A nil clock means time.Now.
func NewTimeService(now func() time.Time, format string) TimeService {
	if now == nil {
		now = time.Now
	}
	if format == "" {
		format = DefaultTimeFormat
	}
	return &timeServiceImpl{now: now, format: format}
}

// Now returns the current time from the injected clock
func (t *timeServiceImpl) Now() time.Time {
	return t.now()
}

// StartOfDay returns midnight of the given day in its own location
func (t *timeServiceImpl) StartOfDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}

// IsSameDay compares calendar dates in a's location
func (t *timeServiceImpl) IsSameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// WeekRange returns start of today through seven days later
func (t *timeServiceImpl) WeekRange(now time.Time) TimeRange {
	start := t.StartOfDay(now)
	return TimeRange{Start: start, End: start.Add(7 * day)}
}

// FormatTime formats t with the configured layout
func (t *timeServiceImpl) FormatTime(value time.Time) string {
	return value.Format(t.format)
}

// HumanDue renders a due date with an overdue, today or tomorrow suffix.
// The suffix is picked from whole elapsed days, not calendar dates.
func (t *timeServiceImpl) HumanDue(due *time.Time, now time.Time) string {
	if due == nil {
		return ""
	}

	diff := due.Sub(now)
	days := int(math.Floor(float64(diff) / float64(day)))
	text := t.FormatTime(*due)

	switch {
	case diff < 0:
		return text + " (overdue)"
	case days == 0:
		return text + " (today)"
	case days == 1:
		return text + " (tomorrow)"
	}
	return text
}

// NextOccurrence advances due by one cadence step. Months use calendar
// arithmetic, so Jan 31 becomes Mar 3 (Mar 2 in leap years).
func (t *timeServiceImpl) NextOccurrence(due time.Time, repeat domain.Repeat) (time.Time, bool) {
	switch repeat {
	case domain.RepeatDaily:
		return due.AddDate(0, 0, 1), true
	case domain.RepeatWeekly:
		return due.AddDate(0, 0, 7), true
	case domain.RepeatMonthly:
		return due.AddDate(0, 1, 0), true
	}
	return due, false
}
