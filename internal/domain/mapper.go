package domain

import (
	"task-tracker/internal/repository"
)

// TaskMapper handles conversion between domain tasks and storage records.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToRecord flattens the time spec into the record's timestamp columns.
func (m *TaskMapper) ToRecord(t Task) repository.Task {
	rec := repository.Task{
		ID:          t.ID,
		Kind:        string(t.Kind()),
		Description: t.Description,
		Done:        t.Done,
		Priority:    int(t.Priority),
	}
	switch w := t.When.(type) {
	case Deadline:
		rec.By = w.By
	case Event:
		rec.From = w.From
		rec.To = w.To
	}
	return rec
}

// FromRecord rebuilds the time spec from the kind letter. Stored events
// are taken as they are, even when their end precedes their start.
func (m *TaskMapper) FromRecord(rec repository.Task) Task {
	t := Task{
		ID:          rec.ID,
		Description: rec.Description,
		Done:        rec.Done,
		Priority:    Priority(rec.Priority),
	}
	switch Kind(rec.Kind) {
	case KindDeadline:
		t.When = Deadline{By: rec.By}
	case KindEvent:
		t.When = Event{From: rec.From, To: rec.To}
	default:
		t.When = Todo{}
	}
	return t
}

// FromRecords converts a slice of records, preserving order.
func (m *TaskMapper) FromRecords(recs []*repository.Task) []Task {
	tasks := make([]Task, len(recs))
	for i, rec := range recs {
		tasks[i] = m.FromRecord(*rec)
	}
	return tasks
}

// SearchOptionsMapper handles conversion between domain and storage search options.
type SearchOptionsMapper struct{}

// NewSearchOptionsMapper creates a new SearchOptionsMapper instance.
func NewSearchOptionsMapper() *SearchOptionsMapper {
	return &SearchOptionsMapper{}
}

// ToRecord converts domain SearchOptions to repository.SearchOptions.
func (m *SearchOptionsMapper) ToRecord(opts SearchOptions) repository.SearchOptions {
	out := repository.SearchOptions{Keyword: opts.Keyword, Done: opts.Done}
	if opts.Kind != nil {
		k := string(*opts.Kind)
		out.Kind = &k
	}
	if opts.MinPriority != nil {
		p := int(*opts.MinPriority)
		out.MinPriority = &p
	}
	return out
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Task          *TaskMapper
	SearchOptions *SearchOptionsMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task:          NewTaskMapper(),
		SearchOptions: NewSearchOptionsMapper(),
	}
}
