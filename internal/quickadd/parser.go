// Package quickadd turns a free-text phrase such as
// "Pay rent tomorrow 9am #home high" into task hints.
package quickadd

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"focusflow/internal/domain"
)

// DefaultHour is the time of day used when a day phrase has no explicit time.
const DefaultHour = 9

// Result holds the hints extracted from a phrase. Due and Priority are nil
// when the phrase did not mention them.
type Result struct {
	Title    string
	Due      *time.Time
	Tags     []string
	Priority *domain.Priority
}

var (
	tagPattern        = regexp.MustCompile(`#([\w-]+)`)
	timePattern       = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	priorityRules = []struct {
		pattern  *regexp.Regexp
		priority domain.Priority
	}{
		{regexp.MustCompile(`(?i)\bcritical\b`), domain.PriorityCritical},
		{regexp.MustCompile(`(?i)\bhigh\b`), domain.PriorityHigh},
		{regexp.MustCompile(`(?i)\bmedium\b`), domain.PriorityMedium},
		{regexp.MustCompile(`(?i)\blow\b`), domain.PriorityLow},
	}

	todayPattern    = regexp.MustCompile(`(?i)\btoday\b`)
	tomorrowPattern = regexp.MustCompile(`(?i)\btomorrow\b`)
	inDaysPattern   = regexp.MustCompile(`(?i)in\s+(\d+)\s+days?`)
	nextWeekPattern = regexp.MustCompile(`(?i)\bnext\s+week\b`)
	onDayPattern    = regexp.MustCompile(`(?i)\bon\s+(\d{1,2})(st|nd|rd|th)?\b`)
	weekdayPattern  = regexp.MustCompile(`(?i)\b(mon|tue|wed|thu|fri|sat|sun)\b`)

	weekdays = map[string]time.Weekday{
		"sun": time.Sunday,
		"mon": time.Monday,
		"tue": time.Tuesday,
		"wed": time.Wednesday,
		"thu": time.Thursday,
		"fri": time.Friday,
		"sat": time.Saturday,
	}
)

// dayRule is one link of the day-phrase chain. apply receives the submatches
// of the first match and the base date.
type dayRule struct {
	pattern *regexp.Regexp
	apply   func(m []string, base time.Time) time.Time
}

// dayRules are tried in order; the first one that matches wins.
var dayRules = []dayRule{
	{todayPattern, func(_ []string, base time.Time) time.Time { return base }},
	{tomorrowPattern, func(_ []string, base time.Time) time.Time { return base.AddDate(0, 0, 1) }},
	{inDaysPattern, func(m []string, base time.Time) time.Time {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return base
		}
		return base.AddDate(0, 0, n)
	}},
	{nextWeekPattern, func(_ []string, base time.Time) time.Time { return base.AddDate(0, 0, 7) }},
	{onDayPattern, func(m []string, base time.Time) time.Time {
		day, _ := strconv.Atoi(m[1])
		// no month correction: day 31 in a 30-day month rolls into the next one
		return time.Date(base.Year(), base.Month(), day, base.Hour(), base.Minute(),
			base.Second(), base.Nanosecond(), base.Location())
	}},
	{weekdayPattern, func(m []string, base time.Time) time.Time {
		target := weekdays[strings.ToLower(m[1])]
		diff := (int(target) + 7 - int(base.Weekday())) % 7
		if diff == 0 {
			diff = 7
		}
		return base.AddDate(0, 0, diff)
	}},
}

// clock is an explicit time of day found in the phrase.
type clock struct {
	hour, minute int
}

// Parse extracts tags, priority and due date from raw relative to now.
// It never fails: fragments it does not understand stay in the title.
func Parse(raw string, now time.Time) Result {
	text := raw
	result := Result{Tags: []string{}}

	for _, m := range tagPattern.FindAllStringSubmatch(text, -1) {
		result.Tags = append(result.Tags, m[1])
	}
	text = strings.TrimSpace(tagPattern.ReplaceAllString(text, ""))

	// the keyword stays in the text
	for _, rule := range priorityRules {
		if rule.pattern.MatchString(text) {
			p := rule.priority
			result.Priority = &p
			break
		}
	}

	var clk *clock
	clk, text = extractTime(text)

	base := now
	for _, rule := range dayRules {
		loc := rule.pattern.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		base = rule.apply(submatches(text, loc), base)
		text = strings.TrimSpace(text[:loc[0]] + text[loc[1]:])
		break
	}

	switch {
	case clk != nil:
		due := time.Date(base.Year(), base.Month(), base.Day(), clk.hour, clk.minute, 0, 0, base.Location())
		result.Due = &due
	case HasDayPhrase(raw):
		due := time.Date(base.Year(), base.Month(), base.Day(), DefaultHour, 0, 0, 0, base.Location())
		result.Due = &due
	}

	result.Title = CleanTitle(text)
	return result
}

// HasDayPhrase reports whether s contains any phrase the day chain understands.
func HasDayPhrase(s string) bool {
	for _, rule := range dayRules {
		if rule.pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// CleanTitle collapses whitespace runs and trims the ends.
func CleanTitle(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// extractTime takes the first clock token and strips it from text. A bare
// number counts, so "in 3 days" loses its 3 here unless an earlier token
// such as "5pm" was taken first.
func extractTime(text string) (*clock, string) {
	loc := timePattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil, text
	}

	hour, _ := strconv.Atoi(text[loc[2]:loc[3]])
	minute := 0
	if loc[4] >= 0 {
		minute, _ = strconv.Atoi(text[loc[4]:loc[5]])
	}
	if loc[6] >= 0 {
		switch strings.ToLower(text[loc[6]:loc[7]]) {
		case "pm":
			if hour < 12 {
				hour += 12
			}
		case "am":
			if hour == 12 {
				hour = 0
			}
		}
	}
	return &clock{hour: hour, minute: minute}, strings.TrimSpace(text[:loc[0]] + text[loc[1]:])
}

func submatches(s string, loc []int) []string {
	out := make([]string, len(loc)/2)
	for i := range out {
		if loc[2*i] >= 0 {
			out[i] = s[loc[2*i]:loc[2*i+1]]
		}
	}
	return out
}
