package cli

import (
	"context"
	"strings"

	"focusflow/internal/domain"
	"focusflow/internal/services"
)

// AddOptions are the form fields of the add command. Empty values are unset.
type AddOptions struct {
	Description  string
	List         string
	Tags         []string
	Priority     string
	Due          string
	Estimate     *float64
	Repeat       string
	Color        string
	Dependencies []string
}

// AddCommand handles the add command
type AddCommand struct {
	app  *App
	opts AddOptions
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App, opts AddOptions) *AddCommand {
	return &AddCommand{app: app, opts: opts}
}

// Execute creates a task from the title words and the form flags.
// The title may carry quick-add hints; flags take precedence.
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	req, err := c.buildRequest(strings.Join(args, " "))
	if err != nil {
		return c.app.errors.Handle("add task", err)
	}

	task, err := c.app.api.CreateTask(ctx, req)
	if task != nil {
		printCreated(c.app, *task)
	}
	return c.app.errors.Handle("add task", err)
}

func (c *AddCommand) buildRequest(title string) (services.CreateRequest, error) {
	req := services.CreateRequest{
		Title:        title,
		Description:  c.opts.Description,
		List:         strings.TrimSpace(c.opts.List),
		Tags:         splitList(c.opts.Tags),
		Estimate:     c.opts.Estimate,
		Color:        c.opts.Color,
		Dependencies: splitList(c.opts.Dependencies),
	}

	if c.opts.Priority != "" {
		p, err := parsePriority(c.opts.Priority)
		if err != nil {
			return req, err
		}
		req.Priority = &p
	}
	if c.opts.Due != "" {
		due, err := parseDue(c.opts.Due, c.app.config.Display.TimeFormat, timeNow())
		if err != nil {
			return req, err
		}
		req.Due = due
	}
	if c.opts.Repeat != "" {
		r, err := parseRepeat(c.opts.Repeat)
		if err != nil {
			return req, err
		}
		req.Repeat = r
	}
	return req, nil
}

// QuickCommand handles the quick command
type QuickCommand struct {
	app *App
}

// NewQuickCommand creates a new quick command handler
func NewQuickCommand(app *App) *QuickCommand {
	return &QuickCommand{app: app}
}

// Execute creates a task from a natural-language phrase
func (c *QuickCommand) Execute(ctx context.Context, args []string) error {
	task, err := c.app.api.QuickAdd(ctx, strings.Join(args, " "))
	if task != nil {
		printCreated(c.app, *task)
	}
	return c.app.errors.Handle("add task", err)
}

// VoiceCommand handles the voice command
type VoiceCommand struct {
	app *App
}

// NewVoiceCommand creates a new voice command handler
func NewVoiceCommand(app *App) *VoiceCommand {
	return &VoiceCommand{app: app}
}

// Execute quick-adds one task per transcript line read from the input
func (c *VoiceCommand) Execute(ctx context.Context, args []string) error {
	tasks, err := c.app.api.CaptureVoice(ctx, services.NewLineTranscriber(c.app.in))
	for _, task := range tasks {
		printCreated(c.app, task)
	}
	if err == nil && len(tasks) == 0 {
		c.app.println("Nothing captured")
	}
	return c.app.errors.Handle("capture voice input", err)
}

func printCreated(app *App, task domain.Task) {
	app.printf("Created %s: %s\n", task.ID, task.Title)
}
