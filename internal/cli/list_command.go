package cli

import (
	"context"
	"fmt"
	"strings"

	"task-tracker/internal/api"
	"task-tracker/internal/errors"
	"task-tracker/internal/services"
)

// ListCommand handles the list command
type ListCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return c.errorHandler.HandleSimple(fmt.Errorf("list takes no arguments, use 'find %s' to search", strings.Join(args, " ")))
	}
	lines, err := c.app.businessAPI.ListTasks(ctx)
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}
	if len(lines) == 0 {
		c.app.println("Your task list is empty.")
		return nil
	}
	c.app.printTaskLines("Here are the tasks in your list:", lines)
	return nil
}

// FindCommand searches tasks by keyword and, optionally, kind, status
// and minimum priority
type FindCommand struct {
	app          *App
	errorHandler *ErrorHandler

	Kind        string
	Status      string
	MinPriority string
}

// NewFindCommand creates a new find command handler
func NewFindCommand(app *App) *FindCommand {
	return &FindCommand{app: app, errorHandler: NewErrorHandler()}
}

func (c *FindCommand) filtered() bool {
	return c.Kind != "" || c.Status != "" || c.MinPriority != ""
}

// Execute runs the find command
func (c *FindCommand) Execute(ctx context.Context, args []string) error {
	keyword := strings.TrimSpace(strings.Join(args, " "))
	if keyword == "" && !c.filtered() {
		return c.errorHandler.HandleSimple(errors.NewValidationError("Please specify what to search for!", nil))
	}

	var lines []services.TaskLine
	var err error
	if c.filtered() {
		lines, err = c.app.businessAPI.SearchTasks(ctx, api.SearchRequest{
			Keyword:     keyword,
			Kind:        c.Kind,
			Status:      c.Status,
			MinPriority: c.MinPriority,
		})
	} else {
		lines, err = c.app.businessAPI.FindTasks(ctx, keyword)
	}
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	if len(lines) == 0 {
		c.app.println("No matching tasks found.")
		return nil
	}
	c.app.printTaskLines("Here are the matching tasks in your list:", lines)
	return nil
}

func (a *App) printTaskLines(heading string, lines []services.TaskLine) {
	a.println(a.renderer.Heading(heading))
	for _, line := range lines {
		a.println(a.renderer.TaskLine(line.String(), line.Task.Done))
	}
}
