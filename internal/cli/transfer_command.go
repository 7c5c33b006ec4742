package cli

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/natefinch/atomic"

	"focusflow/internal/errors"
)

// ExportCommand handles the export command
type ExportCommand struct {
	app *App
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{app: app}
}

// Execute writes the board as JSON to args[0], or to the output when no
// file (or "-") is given. Files are replaced atomically.
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "-" {
		return c.app.errors.Handle("export board", c.app.api.Export(ctx, c.app.out))
	}

	var buf bytes.Buffer
	if err := c.app.api.Export(ctx, &buf); err != nil {
		return c.app.errors.Handle("export board", err)
	}
	if err := atomic.WriteFile(args[0], &buf); err != nil {
		return c.app.errors.Handle("export board", errors.NewStorageError("write "+args[0], err))
	}
	c.app.printf("Exported board to %s\n", args[0])
	return nil
}

// ImportCommand handles the import command
type ImportCommand struct {
	app *App
}

// NewImportCommand creates a new import command handler
func NewImportCommand(app *App) *ImportCommand {
	return &ImportCommand{app: app}
}

// Execute replaces the board with the JSON read from args[0], or from the
// input when the argument is "-"
func (c *ImportCommand) Execute(ctx context.Context, args []string) error {
	var r io.Reader = c.app.in
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return c.app.errors.Handle("import board", errors.NewImportError("cannot read "+args[0], err))
		}
		defer f.Close()
		r = f
	}

	count, err := c.app.api.Import(ctx, r)
	if err != nil {
		return c.app.errors.Handle("import board", err)
	}
	c.app.printf("Imported %d task(s)\n", count)
	return nil
}
