package cli

import (
	"context"
	"strings"

	"focusflow/internal/domain"
	"focusflow/internal/errors"
)

// ListOptions are the query flags shared by list and board
type ListOptions struct {
	List     string
	Priority string
	Status   string
	Due      string
	Sort     string
}

// toQuery converts the flags and free-text words into a filter and sort mode
func (o ListOptions) toQuery(args []string) (domain.Filter, domain.SortMode, error) {
	filter := domain.Filter{
		Text: strings.Join(args, " "),
		List: strings.TrimSpace(o.List),
	}

	if o.Priority != "" {
		p, err := parsePriority(o.Priority)
		if err != nil {
			return filter, domain.SortNone, err
		}
		filter.Priority = &p
	}
	if o.Status != "" {
		s, err := parseStatus(o.Status)
		if err != nil {
			return filter, domain.SortNone, err
		}
		filter.Status = &s
	}

	bucket, ok := domain.ParseDueBucket(o.Due)
	if !ok {
		return filter, domain.SortNone, errors.NewInvalidInputError("due", o.Due, "must be one of overdue, today, this-week")
	}
	filter.Due = bucket

	mode, ok := domain.ParseSortMode(o.Sort)
	if !ok {
		return filter, domain.SortNone, errors.NewInvalidInputError("sort", o.Sort, "must be one of priority, due-asc, due-desc, created")
	}
	return filter, mode, nil
}

// ListCommand handles the list command
type ListCommand struct {
	app  *App
	opts ListOptions
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App, opts ListOptions) *ListCommand {
	return &ListCommand{app: app, opts: opts}
}

// Execute prints one line per matching task
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	filter, mode, err := c.opts.toQuery(args)
	if err != nil {
		return c.app.errors.Handle("list tasks", err)
	}

	views, err := c.app.api.ListTasks(ctx, filter, mode)
	if err != nil {
		return c.app.errors.Handle("list tasks", err)
	}

	if len(views) == 0 {
		c.app.println("No tasks found")
		return nil
	}
	for _, view := range views {
		c.app.println(formatTaskLine(view))
	}
	return nil
}

// BoardCommand handles the board command
type BoardCommand struct {
	app  *App
	opts ListOptions
}

// NewBoardCommand creates a new board command handler
func NewBoardCommand(app *App, opts ListOptions) *BoardCommand {
	return &BoardCommand{app: app, opts: opts}
}

// Execute prints the four status columns in order
func (c *BoardCommand) Execute(ctx context.Context, args []string) error {
	filter, mode, err := c.opts.toQuery(args)
	if err != nil {
		return c.app.errors.Handle("show board", err)
	}

	board, err := c.app.api.Board(ctx, filter, mode)
	if err != nil {
		return c.app.errors.Handle("show board", err)
	}

	for i, column := range board {
		if i > 0 {
			c.app.println()
		}
		c.app.println(columnTitle(column.Status, len(column.Tasks)))
		for _, view := range column.Tasks {
			c.app.println("  " + formatTaskLine(view))
		}
	}
	return nil
}

// ShowCommand handles the show command
type ShowCommand struct {
	app *App
}

// NewShowCommand creates a new show command handler
func NewShowCommand(app *App) *ShowCommand {
	return &ShowCommand{app: app}
}

// Execute prints every field of one task
func (c *ShowCommand) Execute(ctx context.Context, args []string) error {
	view, err := c.app.api.GetTask(ctx, args[0])
	if err != nil {
		return c.app.errors.Handle("show task", err)
	}
	c.app.printf("%s", formatTaskDetail(*view, c.app.config.Display.TimeFormat))
	return nil
}
