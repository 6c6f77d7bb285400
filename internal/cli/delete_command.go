package cli

import (
	"context"
	"fmt"
	"strings"

	"task-tracker/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the delete command. Without a task number the user picks
// one from the list.
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.selectAndDelete(ctx)
	}
	index, err := parseIndex("delete", args)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	return c.deleteTask(ctx, index)
}

func (c *DeleteCommand) deleteTask(ctx context.Context, index int) error {
	change, err := c.app.businessAPI.DeleteTask(ctx, index)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	c.app.println(
		c.app.renderer.Success("Noted. I've removed this task:"),
		change.Task.Task.String(),
		fmt.Sprintf("Now you have %d tasks in the list.", change.Count),
	)
	return nil
}

func (c *DeleteCommand) selectAndDelete(ctx context.Context) error {
	lines, err := c.app.businessAPI.ListTasks(ctx)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	if len(lines) == 0 {
		c.app.println("No tasks found to delete.")
		return nil
	}

	c.app.println("Select a task to delete:")
	for _, line := range lines {
		c.app.println(line.String())
	}
	fmt.Fprint(c.app.out, "Enter number to delete, or 'q' to quit: ")

	input, _ := c.app.readLine()
	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, "q") {
		c.app.println("Delete cancelled.")
		return nil
	}
	index, err := parseIndex("delete", []string{input})
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	return c.deleteTask(ctx, index)
}

// ClearCommand deletes every task after confirmation
type ClearCommand struct {
	app          *App
	errorHandler *ErrorHandler

	// Yes skips the confirmation prompt.
	Yes bool
}

// NewClearCommand creates a new clear command handler
func NewClearCommand(app *App) *ClearCommand {
	return &ClearCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the clear command
func (c *ClearCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return c.errorHandler.HandleSimple(errors.NewInvalidInputError("command", "clear", "clear takes no arguments"))
	}
	lines, err := c.app.businessAPI.ListTasks(ctx)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	if len(lines) == 0 {
		c.app.println("Your task list is already empty.")
		return nil
	}
	if !c.Yes && !c.app.confirm(fmt.Sprintf("Delete all %d tasks? [y/N]: ", len(lines))) {
		c.app.println("Clear cancelled.")
		return nil
	}

	count, err := c.app.businessAPI.ClearTasks(ctx)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	c.app.println(c.app.renderer.Success(fmt.Sprintf("Noted. I've removed all %d tasks.", count)))
	return nil
}
