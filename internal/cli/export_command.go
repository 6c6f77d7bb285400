package cli

import (
	"context"
	"fmt"
	"os"

	"task-tracker/internal/errors"
	"task-tracker/internal/export"
)

// ExportCommand writes every task in a machine-readable format
type ExportCommand struct {
	app          *App
	errorHandler *ErrorHandler

	// Format overrides the configured default; a positional argument
	// does the same in the shell.
	Format string
	// Output names a file to write instead of standard output.
	Output string
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return c.errorHandler.HandleSimple(errors.NewInvalidInputError("command", "export", "usage: tk export [csv|json|yaml|xlsx]"))
	}
	name := c.Format
	if len(args) == 1 {
		name = args[0]
	}
	if name == "" {
		name = c.app.config.Commands.ExportDefaultFormat
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	if c.Output == "" {
		if format == export.FormatXLSX {
			return c.errorHandler.HandleSimple(errors.NewInvalidInputError("output", "", "xlsx export needs --output <file>"))
		}
		_, err := c.app.businessAPI.Export(ctx, format, c.app.out)
		if err != nil {
			return c.errorHandler.Handle("export tasks", err)
		}
		return nil
	}

	return c.exportToFile(ctx, format)
}

func (c *ExportCommand) exportToFile(ctx context.Context, format export.Format) (err error) {
	f, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", c.Output, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to write %s: %w", c.Output, cerr)
		}
	}()

	count, err := c.app.businessAPI.Export(ctx, format, f)
	if err != nil {
		return c.errorHandler.Handle("export tasks", err)
	}
	c.app.println(c.app.renderer.Success(fmt.Sprintf("Exported %d tasks to %s.", count, c.Output)))
	return nil
}
