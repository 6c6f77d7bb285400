package cli

import (
	"context"
	"strings"
	"time"

	"task-tracker/internal/logging"
	"task-tracker/internal/validation"
)

const (
	shellGreeting = "Hello! I'm tk, your task tracker."
	shellPrompt   = "What can I do for you?"
	shellGoodbye  = "Bye. Hope to see you again soon!"
)

// ShellCommand reads commands line by line until "bye" or end of input.
// Each line is checked, and mistyped command names get a suggestion
// instead of running.
type ShellCommand struct {
	app          *App
	validator    *validation.CommandValidator
	errorHandler *ErrorHandler

	// Timeout bounds each line; zero means no limit.
	Timeout time.Duration
}

// NewShellCommand creates a new shell command handler
func NewShellCommand(app *App) *ShellCommand {
	known := append(app.registry.Names(), "bye", "help")
	return &ShellCommand{
		app:          app,
		validator:    validation.NewCommandValidator(known...),
		errorHandler: NewErrorHandler(),
		Timeout:      app.config.Application.Timeout,
	}
}

// Execute runs the shell loop
func (c *ShellCommand) Execute(ctx context.Context, args []string) error {
	c.app.println(c.app.renderer.Heading(shellGreeting), shellPrompt, "")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, ok := c.app.readLine()
		if !ok {
			return nil
		}
		if done := c.handleLine(ctx, line); done {
			return nil
		}
	}
}

// handleLine runs one line and reports whether the shell should stop.
func (c *ShellCommand) handleLine(ctx context.Context, line string) bool {
	result := c.validator.Validate(line)
	if !result.Valid {
		c.app.println(c.app.renderer.Warning("Oops! " + result.Message))
		for _, s := range result.Suggestions {
			c.app.println("  " + c.app.renderer.Muted(s))
		}
		c.app.println("")
		return false
	}

	fields := strings.Fields(line)
	name := strings.ToLower(fields[0])
	switch name {
	case "bye":
		c.app.println(shellGoodbye)
		return true
	case "help":
		c.app.println(c.app.registry.GetUsage(), "")
		return false
	}

	lineCtx, cancel := ctx, context.CancelFunc(func() {})
	if c.Timeout > 0 {
		lineCtx, cancel = context.WithTimeout(ctx, c.Timeout)
	}
	defer cancel()

	logging.Debugf("shell: running %s", name)
	if err := c.app.registry.Execute(lineCtx, name, fields[1:]); err != nil {
		logging.Debugf("shell: %s failed with %s", name, c.errorHandler.GetErrorCode(err))
		c.app.println(c.app.renderer.Warning("Oops! " + err.Error()))
		if hint := c.errorHandler.Hint(err); hint != "" {
			c.app.println("  " + c.app.renderer.Muted(hint))
		}
	}
	c.app.println("")
	return false
}
