package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"task-tracker/internal/domain"
	"task-tracker/internal/errors"
	"task-tracker/internal/services"
)

// AddCommand creates a to-do, deadline or event. Empty By/From/To fields
// are read from "/by", "/from" and "/to" clauses in the arguments instead.
type AddCommand struct {
	app          *App
	kind         domain.Kind
	errorHandler *ErrorHandler

	By       string
	From     string
	To       string
	Priority string
}

func newAddCommand(app *App, kind domain.Kind) *AddCommand {
	return &AddCommand{app: app, kind: kind, errorHandler: NewErrorHandler()}
}

// NewTodoCommand creates a new todo command handler
func NewTodoCommand(app *App) *AddCommand { return newAddCommand(app, domain.KindTodo) }

// NewDeadlineCommand creates a new deadline command handler
func NewDeadlineCommand(app *App) *AddCommand { return newAddCommand(app, domain.KindDeadline) }

// NewEventCommand creates a new event command handler
func NewEventCommand(app *App) *AddCommand { return newAddCommand(app, domain.KindEvent) }

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	text := strings.Join(args, " ")
	api := c.app.businessAPI

	var change *services.TaskChange
	var err error
	switch c.kind {
	case domain.KindDeadline:
		description, by := text, c.By
		if by == "" {
			description, by = splitClause(text, "/by")
		}
		change, err = api.AddDeadline(ctx, description, by, c.Priority)
	case domain.KindEvent:
		description, from, to := text, c.From, c.To
		if from == "" && to == "" {
			var rest string
			description, rest = splitClause(text, "/from")
			from, to = splitClause(rest, "/to")
		}
		change, err = api.AddEvent(ctx, description, from, to, c.Priority)
	default:
		change, err = api.AddTodo(ctx, text, c.Priority)
	}
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	c.app.println(
		c.app.renderer.Success("Got it. I've added this task:"),
		change.Task.Task.String(),
		fmt.Sprintf("Now you have %d tasks in the list.", change.Count),
	)
	return nil
}

// splitClause splits text at the first marker, trimming both halves.
func splitClause(text, marker string) (before, after string) {
	i := strings.Index(text, marker)
	if i < 0 {
		return strings.TrimSpace(text), ""
	}
	return strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+len(marker):])
}

// parseIndex reads the single task number a command operates on.
func parseIndex(command string, args []string) (int, error) {
	if len(args) == 0 {
		return 0, errors.NewValidationError(fmt.Sprintf("Please specify which task to %s!", command), nil)
	}
	index, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, errors.NewValidationError("Task number must be a valid number!", err).
			WithContext("value", args[0])
	}
	return index, nil
}
