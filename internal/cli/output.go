package cli

import (
	"fmt"
	"strings"

	"focusflow/internal/api"
	"focusflow/internal/domain"
)

// formatTaskLine renders one task on a single line:
// 0001 [P1] Pay rent  due 2025-01-01 11:00 (overdue)  @Home #bills  waiting on 1
func formatTaskLine(view api.TaskView) string {
	task := view.Task
	var b strings.Builder

	fmt.Fprintf(&b, "%s [%s] %s", task.ID, task.Priority, task.Title)
	if task.IsDone() {
		b.WriteString(" (done)")
	}
	if view.DueText != "" {
		fmt.Fprintf(&b, "  due %s", view.DueText)
	}

	fmt.Fprintf(&b, "  @%s", task.List)
	for _, tag := range task.Tags {
		fmt.Fprintf(&b, " #%s", tag)
	}

	if task.Repeat != domain.RepeatNone {
		fmt.Fprintf(&b, "  repeats %s", task.Repeat)
	}
	if view.UnmetDependencies > 0 {
		fmt.Fprintf(&b, "  waiting on %d", view.UnmetDependencies)
	}
	return b.String()
}

// formatTaskDetail renders every field of a task, one per line
func formatTaskDetail(view api.TaskView, layout string) string {
	task := view.Task
	var b strings.Builder

	fmt.Fprintf(&b, "ID:          %s\n", task.ID)
	fmt.Fprintf(&b, "Title:       %s\n", task.Title)
	if task.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", task.Description)
	}
	fmt.Fprintf(&b, "Status:      %s\n", task.Status)
	fmt.Fprintf(&b, "Priority:    %s\n", task.Priority)
	fmt.Fprintf(&b, "List:        %s\n", task.List)
	if len(task.Tags) > 0 {
		fmt.Fprintf(&b, "Tags:        %s\n", strings.Join(task.Tags, ", "))
	}
	if view.DueText != "" {
		fmt.Fprintf(&b, "Due:         %s\n", view.DueText)
	}
	if task.Estimate != nil {
		fmt.Fprintf(&b, "Estimate:    %gh\n", *task.Estimate)
	}
	if task.Repeat != domain.RepeatNone {
		fmt.Fprintf(&b, "Repeat:      %s\n", task.Repeat)
	}
	fmt.Fprintf(&b, "Color:       %s\n", task.Color)
	if len(task.Dependencies) > 0 {
		fmt.Fprintf(&b, "Depends on:  %s (%d open)\n", strings.Join(task.Dependencies, ", "), view.UnmetDependencies)
	}
	fmt.Fprintf(&b, "Created:     %s\n", task.CreatedAt.Format(layout))
	if task.CompletedAt != nil {
		fmt.Fprintf(&b, "Completed:   %s\n", task.CompletedAt.Format(layout))
	}
	return b.String()
}

// columnTitle is the board heading for a status column
func columnTitle(status domain.Status, count int) string {
	return fmt.Sprintf("%s (%d)", strings.ToUpper(string(status)), count)
}
