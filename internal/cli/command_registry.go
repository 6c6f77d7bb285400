package cli

import (
	"context"
	"sort"
	"strings"

	"task-tracker/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a new command registry. The commands take
// the shell's line syntax, e.g. "deadline return book /by tomorrow".
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	registry.Register("todo", NewTodoCommand(app))
	registry.Register("deadline", NewDeadlineCommand(app))
	registry.Register("event", NewEventCommand(app))
	registry.Register("list", NewListCommand(app))
	registry.Register("find", NewFindCommand(app))
	registry.Register("mark", NewMarkCommand(app))
	registry.Register("unmark", NewUnmarkCommand(app))
	registry.Register("priority", NewPriorityCommand(app))
	registry.Register("delete", NewDeleteCommand(app))
	registry.Register("clear", NewClearCommand(app))
	registry.Register("on", NewOnCommand(app))
	registry.Register("schedule", NewScheduleCommand(app))
	registry.Register("tips", NewTipsCommand(app))
	registry.Register("export", NewExportCommand(app))

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Names lists the registered command names in alphabetical order.
func (r *CommandRegistry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.commands[commandName]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command")
	}
	return command.Execute(ctx, args)
}

var usageLines = []string{
	"todo <description>",
	"deadline <description> /by <date>",
	"event <description> /from <start> /to <end>",
	"list",
	"find <keyword>",
	"mark <task number>",
	"unmark <task number>",
	"priority <task number> <high|medium|low|none>",
	"delete <task number>",
	"clear",
	"on <date>",
	"schedule <date>",
	"tips",
	"export [csv|json|yaml]",
	"bye",
}

// GetUsage returns the usage string for the shell
func (r *CommandRegistry) GetUsage() string {
	return "Commands:\n  " + strings.Join(usageLines, "\n  ")
}
