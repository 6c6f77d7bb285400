package services

import (
	"context"
	"fmt"

	"task-tracker/internal/datetime"
	"task-tracker/internal/domain"
)

// TaskLine is a task together with the 1-based index users refer to it by.
type TaskLine struct {
	Index int         `json:"index"`
	Task  domain.Task `json:"task"`
}

// String renders the numbered listing form, e.g. "2. [T][ ] read book".
func (l TaskLine) String() string {
	return fmt.Sprintf("%d. %s", l.Index, l.Task)
}

// TaskChange reports a task that was added or removed and the list size after.
type TaskChange struct {
	Task  TaskLine `json:"task"`
	Count int      `json:"count"`
}

// AddOptions carries optional settings for new tasks. A nil Priority lets
// the service guess one from the description.
type AddOptions struct {
	Priority *domain.Priority
}

// DayView is the answer to a date query: the resolved date, its display
// label and the lines to show.
type DayView struct {
	Date  datetime.Date `json:"date"`
	Label string        `json:"label"`
	Lines []string      `json:"lines"`
}

// TaskService handles task lifecycle operations addressed by display index
type TaskService interface {
	// Creation
	AddTodo(ctx context.Context, description string, opts AddOptions) (*TaskChange, error)
	AddDeadline(ctx context.Context, description, by string, opts AddOptions) (*TaskChange, error)
	AddEvent(ctx context.Context, description, from, to string, opts AddOptions) (*TaskChange, error)

	// Queries
	List(ctx context.Context) ([]TaskLine, error)
	Get(ctx context.Context, index int) (*TaskLine, error)
	Find(ctx context.Context, keyword string) ([]TaskLine, error)
	Search(ctx context.Context, opts domain.SearchOptions) ([]TaskLine, error)

	// Mutations
	Mark(ctx context.Context, index int) (*TaskLine, error)
	Unmark(ctx context.Context, index int) (*TaskLine, error)
	SetPriority(ctx context.Context, index int, priority domain.Priority) (*TaskLine, error)
	Delete(ctx context.Context, index int) (*TaskChange, error)
	Clear(ctx context.Context) (int, error)
}

// ScheduleService answers questions about what happens on a date
type ScheduleService interface {
	// TasksOn lists the tasks occurring on the date, numbered by list position.
	TasksOn(ctx context.Context, dateText string) (*DayView, error)
	// Schedule lays the same tasks out as a timeline.
	Schedule(ctx context.Context, dateText string) (*DayView, error)
}

// SuggestionService produces productivity hints from the task list
type SuggestionService interface {
	Suggestions(ctx context.Context) ([]string, error)
	FreeSlots(ctx context.Context, dateText string) ([]string, error)
	Improvements(description string) []string
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TaskService       TaskService
	ScheduleService   ScheduleService
	SuggestionService SuggestionService
}
