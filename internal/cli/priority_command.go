package cli

import (
	"context"
	"strings"

	"task-tracker/internal/errors"
)

// PriorityCommand changes the priority of a task
type PriorityCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewPriorityCommand creates a new priority command handler
func NewPriorityCommand(app *App) *PriorityCommand {
	return &PriorityCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the priority command: <task number> <level>
func (c *PriorityCommand) Execute(ctx context.Context, args []string) error {
	index, err := parseIndex("prioritise", args)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	if len(args) < 2 {
		return c.errorHandler.HandleSimple(errors.NewValidationError(
			"Please specify a priority: high, medium, low or none.", nil))
	}

	line, err := c.app.businessAPI.SetPriority(ctx, index, strings.Join(args[1:], " "))
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	c.app.println(
		c.app.renderer.Success("Priority set to "+line.Task.Priority.String()+":"),
		line.Task.String(),
	)
	return nil
}
