package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"task-tracker/internal/api"
	"task-tracker/internal/config"
)

// App represents the main CLI application
type App struct {
	businessAPI api.BusinessAPI
	config      *config.Config
	in          io.Reader
	reader      *bufio.Reader
	out         io.Writer
	renderer    *Renderer
	registry    *CommandRegistry
}

// AppOption customises an App.
type AppOption func(*App)

// WithOutput sends command output to w instead of stdout.
func WithOutput(w io.Writer) AppOption {
	return func(a *App) { a.out = w }
}

// WithInput reads interactive input from r instead of stdin.
func WithInput(r io.Reader) AppOption {
	return func(a *App) { a.in = r }
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(businessAPI api.BusinessAPI, cfg *config.Config, opts ...AppOption) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	app := &App{
		businessAPI: businessAPI,
		config:      cfg,
		in:          os.Stdin,
		out:         os.Stdout,
	}
	for _, opt := range opts {
		opt(app)
	}
	app.renderer = NewRenderer(app.out, cfg.Display)
	app.registry = NewCommandRegistry(app)
	return app
}

// Run executes one command line the way the interactive shell does.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", a.registry.GetUsage())
	}
	return a.registry.Execute(ctx, strings.ToLower(args[0]), args[1:])
}

// println writes lines to the app's output, wrapped to the display width.
func (a *App) println(lines ...string) {
	for _, line := range lines {
		fmt.Fprintln(a.out, a.renderer.Wrap(line))
	}
}

// readLine returns the next input line without its newline. ok is false
// once input is exhausted.
func (a *App) readLine() (line string, ok bool) {
	if a.reader == nil {
		a.reader = bufio.NewReader(a.in)
	}
	text, err := a.reader.ReadString('\n')
	if err != nil && text == "" {
		return "", false
	}
	return strings.TrimRight(text, "\r\n"), true
}

// confirm asks a yes/no question; anything but y or yes is a no.
func (a *App) confirm(prompt string) bool {
	fmt.Fprint(a.out, prompt)
	answer, ok := a.readLine()
	if !ok {
		fmt.Fprintln(a.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
