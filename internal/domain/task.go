package domain

import (
	"fmt"
	"strings"

	"task-tracker/internal/datetime"
)

// Task is a stored task. ID is assigned by the repository; the display
// index users type is the task's 1-based position in the list instead.
type Task struct {
	ID          int64
	Description string
	Done        bool
	Priority    Priority
	When        TimeSpec
}

// NewTask creates a pending task with a trimmed description. A nil spec
// means a plain to-do.
func NewTask(description string, when TimeSpec) Task {
	if when == nil {
		when = Todo{}
	}
	return Task{
		Description: strings.TrimSpace(description),
		When:        when,
	}
}

func (t Task) Kind() Kind {
	if t.When == nil {
		return KindTodo
	}
	return t.When.Kind()
}

// String renders the listing form, e.g. "[D][ ] return book (by: Dec 15 2024, 18:00)".
func (t Task) String() string {
	status := "[ ]"
	if t.Done {
		status = "[X]"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]%s %s", t.Kind(), status, t.Description)

	switch w := t.When.(type) {
	case Deadline:
		fmt.Fprintf(&b, " (by: %s)", datetime.FormatDateTime(w.By))
	case Event:
		fmt.Fprintf(&b, " (from: %s to: %s)", datetime.FormatDateTime(w.From), datetime.FormatDateTime(w.To))
	}

	if t.Priority != PriorityNone {
		fmt.Fprintf(&b, " {%s}", t.Priority)
	}
	return b.String()
}

// DueAt is the time a task is due, or the zero Timestamp for to-dos.
// Events are due when they start.
func (t Task) DueAt() datetime.Timestamp {
	switch w := t.When.(type) {
	case Deadline:
		return w.By
	case Event:
		return w.From
	default:
		return datetime.Timestamp{}
	}
}

// IsOverdue reports a pending task whose due time is before now.
func (t Task) IsOverdue(now datetime.Timestamp) bool {
	due := t.DueAt()
	return !t.Done && !due.IsZero() && due.Before(now)
}
