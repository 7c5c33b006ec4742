package cli

import (
	"context"

	"focusflow/internal/services"
)

// EditOptions holds the edit flags. Nil fields were not given on the
// command line and stay unchanged.
type EditOptions struct {
	Title         *string
	Description   *string
	List          *string
	Tags          *[]string
	Priority      *string
	Due           *string
	ClearDue      bool
	Estimate      *float64
	ClearEstimate bool
	Repeat        *string
	Color         *string
	Dependencies  *[]string
	Status        *string
}

// EditCommand handles the edit command
type EditCommand struct {
	app  *App
	opts EditOptions
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App, opts EditOptions) *EditCommand {
	return &EditCommand{app: app, opts: opts}
}

// Execute applies the given flags to the task named by args[0]
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	req, err := c.buildRequest()
	if err != nil {
		return c.app.errors.Handle("edit task", err)
	}

	task, err := c.app.api.EditTask(ctx, args[0], req)
	if task != nil {
		c.app.printf("Updated %s: %s\n", task.ID, task.Title)
	}
	return c.app.errors.Handle("edit task", err)
}

func (c *EditCommand) buildRequest() (services.EditRequest, error) {
	o := c.opts
	req := services.EditRequest{
		Title:         o.Title,
		Description:   o.Description,
		List:          o.List,
		Color:         o.Color,
		Estimate:      o.Estimate,
		ClearDue:      o.ClearDue,
		ClearEstimate: o.ClearEstimate,
	}

	if o.Tags != nil {
		tags := splitList(*o.Tags)
		req.Tags = &tags
	}
	if o.Dependencies != nil {
		deps := splitList(*o.Dependencies)
		req.Dependencies = &deps
	}
	if o.Priority != nil {
		p, err := parsePriority(*o.Priority)
		if err != nil {
			return req, err
		}
		req.Priority = &p
	}
	if o.Status != nil {
		s, err := parseStatus(*o.Status)
		if err != nil {
			return req, err
		}
		req.Status = &s
	}
	if o.Repeat != nil {
		r, err := parseRepeat(*o.Repeat)
		if err != nil {
			return req, err
		}
		req.Repeat = &r
	}
	if o.Due != nil && !o.ClearDue {
		due, err := parseDue(*o.Due, c.app.config.Display.TimeFormat, timeNow())
		if err != nil {
			return req, err
		}
		req.Due = due
	}
	return req, nil
}
