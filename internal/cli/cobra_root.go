package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"task-tracker/internal/api"
	"task-tracker/internal/config"
	"task-tracker/internal/logging"
)

// annotationStore marks commands that need an open task store.
const annotationStore = "tk/store"

// Opener builds the business API for a loaded configuration. The closer
// releases the task store.
type Opener func(cfg *config.Config) (api.BusinessAPI, io.Closer, error)

// Streams are the standard streams commands talk to.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	loader  *config.Loader
	open    Opener
	streams Streams

	config *config.Config
	app    *App
	closer io.Closer
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(loader *config.Loader, open Opener, streams Streams) *RootCommand {
	if streams.In == nil {
		streams.In = os.Stdin
	}
	if streams.Out == nil {
		streams.Out = os.Stdout
	}
	if streams.Err == nil {
		streams.Err = os.Stderr
	}
	root := &RootCommand{
		loader:  loader,
		open:    open,
		streams: streams,
	}

	root.cmd = &cobra.Command{
		Use:   "tk",
		Short: "A command-line task tracker that understands dates",
		Long: `Task Tracker (tk) keeps a list of to-dos, deadlines and events and
understands dates the way you type them.

DATES AND TIMES:
  today, tomorrow, yesterday, next week, next month
  in 3 days, in 2 weeks, in 1 month
  next friday, this mon
  today 3pm, tomorrow 1800, next friday 9:30am
  2024-12-15, 15/12/2024, 15/12/2024 1800, 1800, 6pm

EXAMPLES:
  tk todo read book
  tk deadline return book --by "tomorrow 6pm"
  tk event project meeting --from "next mon 2pm" --to "next mon 4pm"
  tk list
  tk mark 2
  tk schedule today --free
  tk export --format yaml --output tasks.yaml
  tk shell

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment (.env fills gaps) > ~/.config/tk/config.toml > defaults

    TK_CONFIG                 Config file (default: ~/.config/tk/config.toml)
    TK_STORAGE                Storage backend, sqlite or text (default: sqlite)
    TK_DATA_DIR               Data directory (default: ~/.tk)
    TK_DB_FILENAME            SQLite filename (default: tk.db)
    TK_TEXT_FILENAME          Text store filename (default: tasks.txt)
    TK_DISPLAY_WIDTH          Wrap width (default: 80)
    TK_DISPLAY_COLOR          auto, always or never (default: auto)
    TK_APP_TIMEOUT            Per-command timeout (default: 30s)
    TK_NOW                    Pin "now", e.g. 2024-12-18T14:30
    TK_DEBUG                  Print debug logs to stderr`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := cmd.Annotations[annotationStore]; !ok {
				return nil
			}
			return root.setup()
		},
	}
	root.cmd.SetIn(streams.In)
	root.cmd.SetOut(streams.Out)
	root.cmd.SetErr(streams.Err)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Command exposes the cobra command, mainly for tests.
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// SetArgs replaces os.Args[1:] as the arguments to parse.
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Execute runs the root command and closes the task store afterwards.
func (r *RootCommand) Execute() error {
	err := r.cmd.Execute()
	if r.closer != nil {
		if cerr := r.closer.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close task store: %w", cerr)
		}
		r.closer = nil
	}
	return err
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Storage configuration
	flags.String("storage", "", "Storage backend, sqlite or text (overrides TK_STORAGE)")
	flags.String("db-dir", "", "Data directory (overrides TK_DATA_DIR)")
	flags.String("db-filename", "", "SQLite filename (overrides TK_DB_FILENAME)")
	flags.String("text-filename", "", "Text store filename (overrides TK_TEXT_FILENAME)")

	// Validation configuration
	flags.Int("description-min-length", 0, "Minimum description length (overrides TK_VALIDATION_DESCRIPTION_MIN)")
	flags.Int("description-max-length", 0, "Maximum description length (overrides TK_VALIDATION_DESCRIPTION_MAX)")

	// Display configuration
	flags.Int("width", 0, "Wrap output at this width (overrides TK_DISPLAY_WIDTH)")
	flags.String("color", "", "Colour output: auto, always or never (overrides TK_DISPLAY_COLOR)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Per-command timeout (overrides TK_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Print debug logs to stderr (overrides TK_APP_VERBOSE)")
	flags.String("now", "", "Pin the current time, e.g. 2024-12-18T14:30 (overrides TK_NOW)")
}

// overridesFromFlags collects the flags the user actually set
func (r *RootCommand) overridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	o := &config.ConfigOverrides{}

	o.Backend = changedString(flags, "storage")
	o.DataDir = changedString(flags, "db-dir")
	o.DBFilename = changedString(flags, "db-filename")
	o.TextFilename = changedString(flags, "text-filename")

	o.DescriptionMinLength = changedInt(flags, "description-min-length")
	o.DescriptionMaxLength = changedInt(flags, "description-max-length")

	o.Width = changedInt(flags, "width")
	o.Color = changedString(flags, "color")

	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		o.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		o.Verbose = &v
	}
	o.Now = changedString(flags, "now")

	return o
}

func changedString(flags *pflag.FlagSet, name string) *string {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetString(name)
	return &v
}

func changedInt(flags *pflag.FlagSet, name string) *int {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetInt(name)
	return &v
}

// setup loads configuration, then opens the task store
func (r *RootCommand) setup() error {
	cfg, err := r.loader.LoadWithOverrides(r.overridesFromFlags())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	r.config = cfg
	logging.Configure(r.streams.Err, cfg.Application.Verbose)

	businessAPI, closer, err := r.open(cfg)
	if err != nil {
		return err
	}
	r.closer = closer
	r.app = NewApp(businessAPI, cfg, WithInput(r.streams.In), WithOutput(r.streams.Out))
	return nil
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 30 * time.Second
}

// run executes command with the configured timeout
func (r *RootCommand) run(command func(app *App) Command) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
		defer cancel()
		return command(r.app).Execute(ctx, args)
	}
}

func storeCommand(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationStore] = "true"
	return cmd
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	var priority string

	todoCmd := &cobra.Command{
		Use:   "todo <description>",
		Short: "Add a to-do",
		Args:  cobra.MinimumNArgs(1),
		RunE: r.run(func(app *App) Command {
			c := NewTodoCommand(app)
			c.Priority = priority
			return c
		}),
	}
	todoCmd.Flags().StringVarP(&priority, "priority", "p", "", "high, medium, low or none (default: guessed from the description)")

	var by string
	deadlineCmd := &cobra.Command{
		Use:   "deadline <description> --by <date>",
		Short: "Add a task that is due at a date and time",
		Long: `Add a task that is due at a date and time.

The description may also carry the due date as "/by <date>".

Examples:
  tk deadline return book --by "tomorrow 6pm"
  tk deadline submit report /by 15/12/2024 1700`,
		Args: cobra.MinimumNArgs(1),
		RunE: r.run(func(app *App) Command {
			c := NewDeadlineCommand(app)
			c.By = by
			c.Priority = priority
			return c
		}),
	}
	deadlineCmd.Flags().StringVar(&by, "by", "", "when the task is due")
	deadlineCmd.Flags().StringVarP(&priority, "priority", "p", "", "high, medium, low or none")

	var from, to string
	eventCmd := &cobra.Command{
		Use:   "event <description> --from <start> --to <end>",
		Short: "Add a task that spans a time range",
		Long: `Add a task that spans a time range. The end may not be before the start.

Examples:
  tk event team meeting --from "today 2pm" --to "today 3pm"
  tk event holiday /from 2024-12-23 /to 2024-12-27`,
		Args: cobra.MinimumNArgs(1),
		RunE: r.run(func(app *App) Command {
			c := NewEventCommand(app)
			c.From, c.To = from, to
			c.Priority = priority
			return c
		}),
	}
	eventCmd.Flags().StringVar(&from, "from", "", "when the event starts")
	eventCmd.Flags().StringVar(&to, "to", "", "when the event ends")
	eventCmd.Flags().StringVarP(&priority, "priority", "p", "", "high, medium, low or none")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all tasks",
		Args:  cobra.NoArgs,
		RunE:  r.run(func(app *App) Command { return NewListCommand(app) }),
	}

	var kind, status, minPriority string
	findCmd := &cobra.Command{
		Use:   "find [keyword]",
		Short: "Find tasks by keyword and filters",
		Long: `Find tasks whose description contains a keyword, ignoring case.
Results keep the numbers shown by 'tk list'.

Examples:
  tk find book
  tk find --kind deadline --status pending
  tk find report --min-priority high`,
		RunE: r.run(func(app *App) Command {
			c := NewFindCommand(app)
			c.Kind, c.Status, c.MinPriority = kind, status, minPriority
			return c
		}),
	}
	findCmd.Flags().StringVar(&kind, "kind", "", "todo, deadline or event")
	findCmd.Flags().StringVar(&status, "status", "", "done or pending")
	findCmd.Flags().StringVar(&minPriority, "min-priority", "", "lowest priority to include")

	markCmd := &cobra.Command{
		Use:   "mark <task number>",
		Short: "Mark a task as done",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run(func(app *App) Command { return NewMarkCommand(app) }),
	}

	unmarkCmd := &cobra.Command{
		Use:   "unmark <task number>",
		Short: "Mark a task as not done yet",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run(func(app *App) Command { return NewUnmarkCommand(app) }),
	}

	priorityCmd := &cobra.Command{
		Use:   "priority <task number> <high|medium|low|none>",
		Short: "Change the priority of a task",
		Args:  cobra.ExactArgs(2),
		RunE:  r.run(func(app *App) Command { return NewPriorityCommand(app) }),
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [task number]",
		Short: "Delete a task",
		Long: `Delete a task by its number. Without a number you pick the task
from the list.`,
		Args: cobra.MaximumNArgs(1),
		RunE: r.run(func(app *App) Command { return NewDeleteCommand(app) }),
	}

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every task",
		Args:  cobra.NoArgs,
		RunE: r.run(func(app *App) Command {
			c := NewClearCommand(app)
			c.Yes = yes
			return c
		}),
	}
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	onCmd := &cobra.Command{
		Use:   "on <date>",
		Short: "List the tasks occurring on a date",
		Args:  cobra.MinimumNArgs(1),
		RunE:  r.run(func(app *App) Command { return NewOnCommand(app) }),
	}

	var free bool
	scheduleCmd := &cobra.Command{
		Use:   "schedule <date>",
		Short: "Show the timeline of a date",
		Long: `Show the tasks of a date as a timeline: all-day tasks first, then
timed tasks in order under their start time.

Examples:
  tk schedule today
  tk schedule next friday --free`,
		Args: cobra.MinimumNArgs(1),
		RunE: r.run(func(app *App) Command {
			c := NewScheduleCommand(app)
			c.Free = free
			return c
		}),
	}
	scheduleCmd.Flags().BoolVar(&free, "free", false, "also list open time windows")

	var tipsFor string
	tipsCmd := &cobra.Command{
		Use:     "tips",
		Aliases: []string{"help-tips"},
		Short:   "Show a summary of your list with suggestions",
		Args:    cobra.NoArgs,
		RunE: r.run(func(app *App) Command {
			c := NewTipsCommand(app)
			c.For = tipsFor
			return c
		}),
	}
	tipsCmd.Flags().StringVar(&tipsFor, "for", "", "also suggest how to improve this task description")

	var format, output string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export all tasks",
		Long: `Export all tasks as csv, json, yaml or xlsx.

Examples:
  tk export > tasks.csv
  tk export --format json
  tk export --format xlsx --output tasks.xlsx`,
		Args: cobra.NoArgs,
		RunE: r.run(func(app *App) Command {
			c := NewExportCommand(app)
			c.Format, c.Output = format, output
			return c
		}),
	}
	exportCmd.Flags().StringVarP(&format, "format", "f", "", "csv, json, yaml or xlsx (default from TK_EXPORT_DEFAULT_FORMAT)")
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of standard output")

	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Long: `Start an interactive session that reads one command per line:

  deadline return book /by tomorrow 6pm
  event party /from today 7pm /to today 11pm
  bye`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewShellCommand(r.app).Execute(cmd.Context(), args)
		},
	}

	for _, c := range []*cobra.Command{
		todoCmd, deadlineCmd, eventCmd, listCmd, findCmd, markCmd, unmarkCmd,
		priorityCmd, deleteCmd, clearCmd, onCmd, scheduleCmd, tipsCmd, exportCmd, shellCmd,
	} {
		r.cmd.AddCommand(storeCommand(c))
	}
}
