package cli

import (
	"context"

	"focusflow/internal/domain"
	"focusflow/internal/services"
)

// DoneCommand handles the done command
type DoneCommand struct {
	app *App
}

// NewDoneCommand creates a new done command handler
func NewDoneCommand(app *App) *DoneCommand {
	return &DoneCommand{app: app}
}

// Execute completes each given task. Recurring tasks report their successor.
func (c *DoneCommand) Execute(ctx context.Context, args []string) error {
	for _, id := range args {
		change, err := c.app.api.CompleteTask(ctx, id)
		if change != nil {
			printChange(c.app, "Completed", change)
		}
		if err != nil {
			return c.app.errors.Handle("complete task "+id, err)
		}
	}
	return nil
}

func printChange(app *App, verb string, change *services.TaskChange) {
	app.printf("%s %s: %s\n", verb, change.Task.ID, change.Task.Title)
	if change.Spawned != nil {
		next := change.Spawned
		app.printf("Next occurrence %s due %s\n", next.ID, next.Due.Format(app.config.Display.TimeFormat))
	}
}

// UndoCommand handles the undo command
type UndoCommand struct {
	app *App
}

// NewUndoCommand creates a new undo command handler
func NewUndoCommand(app *App) *UndoCommand {
	return &UndoCommand{app: app}
}

// Execute puts each given task back in the todo column
func (c *UndoCommand) Execute(ctx context.Context, args []string) error {
	for _, id := range args {
		change, err := c.app.api.MoveTask(ctx, id, domain.StatusTodo)
		if change != nil {
			printChange(c.app, "Reopened", change)
		}
		if err != nil {
			return c.app.errors.Handle("reopen task "+id, err)
		}
	}
	return nil
}

// ToggleCommand handles the toggle command
type ToggleCommand struct {
	app *App
}

// NewToggleCommand creates a new toggle command handler
func NewToggleCommand(app *App) *ToggleCommand {
	return &ToggleCommand{app: app}
}

// Execute flips each given task between done and todo
func (c *ToggleCommand) Execute(ctx context.Context, args []string) error {
	for _, id := range args {
		change, err := c.app.api.ToggleDone(ctx, id)
		if change != nil {
			verb := "Reopened"
			if change.Task.IsDone() {
				verb = "Completed"
			}
			printChange(c.app, verb, change)
		}
		if err != nil {
			return c.app.errors.Handle("toggle task "+id, err)
		}
	}
	return nil
}

// MoveCommand handles the move command
type MoveCommand struct {
	app *App
}

// NewMoveCommand creates a new move command handler
func NewMoveCommand(app *App) *MoveCommand {
	return &MoveCommand{app: app}
}

// Execute places args[0] in the column named by args[1]. Moving to done
// never creates a recurring successor.
func (c *MoveCommand) Execute(ctx context.Context, args []string) error {
	status, err := parseStatus(args[1])
	if err != nil {
		return c.app.errors.Handle("move task", err)
	}

	change, err := c.app.api.MoveTask(ctx, args[0], status)
	if change != nil {
		c.app.printf("Moved %s to %s\n", change.Task.ID, change.Task.Status)
	}
	return c.app.errors.Handle("move task", err)
}

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute removes each given task. Unknown ids are ignored.
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	for _, id := range args {
		if err := c.app.api.DeleteTask(ctx, id); err != nil {
			return c.app.errors.Handle("delete task "+id, err)
		}
		c.app.printf("Deleted %s\n", id)
	}
	return nil
}
