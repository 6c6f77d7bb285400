package cli

import (
	"context"

	"task-tracker/internal/services"
)

// MarkCommand marks a task as done, or as not done when undo is set
type MarkCommand struct {
	app          *App
	undo         bool
	errorHandler *ErrorHandler
}

// NewMarkCommand creates a new mark command handler
func NewMarkCommand(app *App) *MarkCommand {
	return &MarkCommand{app: app, errorHandler: NewErrorHandler()}
}

// NewUnmarkCommand creates a new unmark command handler
func NewUnmarkCommand(app *App) *MarkCommand {
	return &MarkCommand{app: app, undo: true, errorHandler: NewErrorHandler()}
}

// Execute runs the mark command
func (c *MarkCommand) Execute(ctx context.Context, args []string) error {
	name := "mark"
	if c.undo {
		name = "unmark"
	}
	index, err := parseIndex(name, args)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	var line *services.TaskLine
	if c.undo {
		line, err = c.app.businessAPI.UnmarkTask(ctx, index)
	} else {
		line, err = c.app.businessAPI.MarkTask(ctx, index)
	}
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	heading := "Nice! I've marked this task as done:"
	if c.undo {
		heading = "OK, I've marked this task as not done yet:"
	}
	c.app.println(c.app.renderer.Success(heading), line.Task.String())
	return nil
}
