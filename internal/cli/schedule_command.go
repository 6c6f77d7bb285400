package cli

import (
	"context"
	"strings"
)

// OnCommand lists the tasks occurring on a date
type OnCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewOnCommand creates a new on command handler
func NewOnCommand(app *App) *OnCommand {
	return &OnCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the on command
func (c *OnCommand) Execute(ctx context.Context, args []string) error {
	view, err := c.app.businessAPI.TasksOn(ctx, strings.Join(args, " "))
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	c.app.println(c.app.renderer.Heading("Tasks on " + view.Label + ":"))
	if len(view.Lines) == 0 {
		c.app.println("No tasks found on this date.")
		return nil
	}
	c.app.println(view.Lines...)
	return nil
}

// ScheduleCommand shows the timeline of a date
type ScheduleCommand struct {
	app          *App
	errorHandler *ErrorHandler

	// Free appends the open time windows of the date.
	Free bool
}

// NewScheduleCommand creates a new schedule command handler
func NewScheduleCommand(app *App) *ScheduleCommand {
	return &ScheduleCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the schedule command
func (c *ScheduleCommand) Execute(ctx context.Context, args []string) error {
	dateText := strings.Join(args, " ")
	view, err := c.app.businessAPI.Schedule(ctx, dateText)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	c.app.println(c.app.renderer.Timeline(view.Lines)...)

	if !c.Free {
		return nil
	}
	slots, err := c.app.businessAPI.GetFreeSlots(ctx, dateText)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	c.app.println("", c.app.renderer.Heading("Free time:"))
	if len(slots) == 0 {
		c.app.println("  No free windows, it's a busy day.")
	}
	for _, slot := range slots {
		c.app.println("  - " + slot)
	}
	return nil
}
