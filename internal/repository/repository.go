// Package repository defines the storage contract for tasks. The sqlite and
// textfile subpackages implement it.
package repository

import (
	"context"
	"strings"

	"task-tracker/internal/datetime"
)

// Task is the storage form of a task. Kind is "T", "D" or "E". Timestamps
// that do not apply to the kind are zero.
type Task struct {
	ID          int64
	Kind        string
	Description string
	Done        bool
	Priority    int
	By          datetime.Timestamp
	From        datetime.Timestamp
	To          datetime.Timestamp
}

// SearchOptions narrows ListTasks. Nil fields do not filter.
type SearchOptions struct {
	Keyword     *string
	Kind        *string
	Done        *bool
	MinPriority *int
}

// Matches applies the options in memory, for backends without a query language.
func (o SearchOptions) Matches(t *Task) bool {
	if o.Keyword != nil && *o.Keyword != "" && !containsFold(t.Description, *o.Keyword) {
		return false
	}
	if o.Kind != nil && t.Kind != *o.Kind {
		return false
	}
	if o.Done != nil && t.Done != *o.Done {
		return false
	}
	if o.MinPriority != nil && t.Priority < *o.MinPriority {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Repository stores tasks in insertion order. Every method that touches
// the backing store takes a context.
type Repository interface {
	// Create operations
	CreateTask(ctx context.Context, task *Task) error

	// Read operations
	GetTask(ctx context.Context, id int64) (*Task, error)
	ListTasks(ctx context.Context) ([]*Task, error)
	SearchTasks(ctx context.Context, opts SearchOptions) ([]*Task, error)

	// Update operations
	UpdateTask(ctx context.Context, task *Task) error

	// Delete operations
	DeleteTask(ctx context.Context, id int64) error
	DeleteAllTasks(ctx context.Context) error

	// Utility
	Close() error
}
