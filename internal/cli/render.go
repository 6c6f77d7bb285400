package cli

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"

	"task-tracker/internal/config"
)

// Renderer styles and wraps text for the terminal. Styling is skipped
// entirely when colour is off so plain output stays byte-for-byte stable.
type Renderer struct {
	width  int
	styled bool

	heading lipgloss.Style
	done    lipgloss.Style
	muted   lipgloss.Style
	warning lipgloss.Style
	success lipgloss.Style
}

// NewRenderer builds a renderer for out using the display settings.
func NewRenderer(out io.Writer, display config.DisplayConfig) *Renderer {
	lr := lipgloss.NewRenderer(out)
	return &Renderer{
		width:   display.Width,
		styled:  colorEnabled(out, display.Color),
		heading: lr.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
		done:    lr.NewStyle().Foreground(lipgloss.Color("244")),
		muted:   lr.NewStyle().Faint(true),
		warning: lr.NewStyle().Foreground(lipgloss.Color("1")),
		success: lr.NewStyle().Foreground(lipgloss.Color("2")),
	}
}

func colorEnabled(out io.Writer, mode string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Wrap breaks s at word boundaries to fit the display width.
func (r *Renderer) Wrap(s string) string {
	if r.width <= 0 || len(s) <= r.width {
		return s
	}
	return wordwrap.String(s, r.width)
}

func (r *Renderer) render(style lipgloss.Style, s string) string {
	if !r.styled {
		return s
	}
	return style.Render(s)
}

// Heading styles a section title such as "Here are the tasks in your list:".
func (r *Renderer) Heading(s string) string { return r.render(r.heading, s) }

// Muted styles secondary text like hints.
func (r *Renderer) Muted(s string) string { return r.render(r.muted, s) }

// Warning styles error text.
func (r *Renderer) Warning(s string) string { return r.render(r.warning, s) }

// Success styles confirmations.
func (r *Renderer) Success(s string) string { return r.render(r.success, s) }

// TaskLine dims completed tasks.
func (r *Renderer) TaskLine(line string, done bool) string {
	if done {
		return r.render(r.done, line)
	}
	return line
}

// Timeline styles the header lines of a timeline and leaves bullets alone.
func (r *Renderer) Timeline(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if line != "" && !strings.HasPrefix(line, " ") && strings.HasSuffix(line, ":") {
			out[i] = r.Heading(line)
			continue
		}
		out[i] = line
	}
	return out
}
