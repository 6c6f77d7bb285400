package cli

import (
	"context"
	"fmt"
	"strings"
)

// TipsCommand shows a summary of the list with suggestions
type TipsCommand struct {
	app          *App
	errorHandler *ErrorHandler

	// For, when set, adds advice on how to phrase this task description.
	For string
}

// NewTipsCommand creates a new tips command handler
func NewTipsCommand(app *App) *TipsCommand {
	return &TipsCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the tips command. Arguments are taken as the description
// to improve when For is empty.
func (c *TipsCommand) Execute(ctx context.Context, args []string) error {
	stats, err := c.app.businessAPI.GetStatistics(ctx)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	c.app.println(fmt.Sprintf("You have %d tasks: %d done, %d pending, %d overdue.",
		stats.Total, stats.Done, stats.Pending, stats.Overdue))

	suggestions, err := c.app.businessAPI.GetSuggestions(ctx)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	c.printList("Suggestions:", suggestions)

	description := c.For
	if description == "" {
		description = strings.Join(args, " ")
	}
	if strings.TrimSpace(description) != "" {
		c.printList(fmt.Sprintf("Ways to improve '%s':", description), c.app.businessAPI.GetImprovements(description))
	}
	return nil
}

func (c *TipsCommand) printList(heading string, items []string) {
	if len(items) == 0 {
		return
	}
	c.app.println(c.app.renderer.Heading(heading))
	for _, item := range items {
		c.app.println("  - " + c.app.renderer.Muted(item))
	}
}
