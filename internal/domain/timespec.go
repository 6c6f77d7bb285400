package domain

import (
	"strings"

	"task-tracker/internal/datetime"
	apperrors "task-tracker/internal/errors"
)

// Kind tags the three task variants. The letter is the one shown in
// listings and written to the text store.
type Kind string

const (
	KindTodo     Kind = "T"
	KindDeadline Kind = "D"
	KindEvent    Kind = "E"
)

// ParseKind accepts the letter or the full name in any case.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "t", "todo":
		return KindTodo, true
	case "d", "deadline":
		return KindDeadline, true
	case "e", "event":
		return KindEvent, true
	}
	return "", false
}

func (k Kind) Name() string {
	switch k {
	case KindTodo:
		return "todo"
	case KindDeadline:
		return "deadline"
	case KindEvent:
		return "event"
	default:
		return "unknown"
	}
}

// TimeSpec is the scheduling part of a task. It is implemented only by
// Todo, Deadline and Event.
type TimeSpec interface {
	Kind() Kind
	timeSpec()
}

// Todo has no date and never appears in date queries.
type Todo struct{}

// Deadline is due at By.
type Deadline struct {
	By datetime.Timestamp
}

// Event runs from From to To inclusive.
type Event struct {
	From datetime.Timestamp
	To   datetime.Timestamp
}

func (Todo) Kind() Kind     { return KindTodo }
func (Deadline) Kind() Kind { return KindDeadline }
func (Event) Kind() Kind    { return KindEvent }

func (Todo) timeSpec()     {}
func (Deadline) timeSpec() {}
func (Event) timeSpec()    {}

// NewEvent rejects an end before the start. Equal timestamps are allowed.
func NewEvent(from, to datetime.Timestamp) (Event, error) {
	if to.Before(from) {
		return Event{}, apperrors.NewValidationError(
			"Event end time ("+datetime.FormatDateTime(to)+") cannot be before its start time ("+
				datetime.FormatDateTime(from)+")!", nil).
			WithContext("from", datetime.FormatISO(from)).
			WithContext("to", datetime.FormatISO(to))
	}
	return Event{From: from, To: to}, nil
}
