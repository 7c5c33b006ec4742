package cli

import (
	"context"
	"strings"

	"focusflow/internal/errors"
)

// ResetCommand handles the reset command
type ResetCommand struct {
	app     *App
	confirm bool
}

// NewResetCommand creates a new reset command handler
func NewResetCommand(app *App, confirm bool) *ResetCommand {
	return &ResetCommand{app: app, confirm: confirm}
}

// Execute empties the board. It refuses to run without confirmation.
func (c *ResetCommand) Execute(ctx context.Context, args []string) error {
	if !c.confirm {
		return c.app.errors.Handle("reset board",
			errors.NewInvalidInputError("yes", false, "pass --yes to delete every task"))
	}
	if err := c.app.api.ResetBoard(ctx); err != nil {
		return c.app.errors.Handle("reset board", err)
	}
	c.app.println("Board reset")
	return nil
}

// RemindersCommand handles the reminders subcommands
type RemindersCommand struct {
	app *App
}

// NewRemindersCommand creates a new reminders command handler
func NewRemindersCommand(app *App) *RemindersCommand {
	return &RemindersCommand{app: app}
}

// Status prints whether reminders are on
func (c *RemindersCommand) Status(ctx context.Context) error {
	state := "disabled"
	if c.app.api.RemindersEnabled() {
		state = "enabled"
	}
	c.app.printf("Reminders are %s\n", state)
	return nil
}

// Enable asks for notification permission and switches reminders on
func (c *RemindersCommand) Enable(ctx context.Context) error {
	if err := c.app.api.EnableReminders(ctx); err != nil {
		return c.app.errors.Handle("enable reminders", err)
	}
	c.app.println("Reminders enabled")
	return nil
}

// Disable switches reminders off
func (c *RemindersCommand) Disable(ctx context.Context) error {
	if err := c.app.api.DisableReminders(ctx); err != nil {
		return c.app.errors.Handle("disable reminders", err)
	}
	c.app.println("Reminders disabled")
	return nil
}

// Scan runs a single reminder pass
func (c *RemindersCommand) Scan(ctx context.Context) error {
	result, err := c.app.api.ScanReminders(ctx)
	if err != nil {
		return c.app.errors.Handle("scan reminders", err)
	}
	if !c.app.api.RemindersEnabled() {
		c.app.println("Reminders are disabled")
		return nil
	}
	if result.Sent() == 0 {
		c.app.println("Nothing to remind")
		return nil
	}
	if len(result.Upcoming) > 0 {
		c.app.printf("Upcoming: %s\n", strings.Join(result.Upcoming, ", "))
	}
	if len(result.Overdue) > 0 {
		c.app.printf("Overdue: %s\n", strings.Join(result.Overdue, ", "))
	}
	return nil
}

// Run scans on the configured interval until ctx is cancelled
func (c *RemindersCommand) Run(ctx context.Context) error {
	if !c.app.api.RemindersEnabled() {
		return c.app.errors.Handle("run reminders",
			errors.NewInvalidInputError("reminders", false, "enable reminders first"))
	}
	c.app.printf("Watching for due tasks every %s, press Ctrl+C to stop\n", c.app.config.Reminders.Interval)
	return c.app.errors.Handle("run reminders", c.app.api.RunReminders(ctx))
}
