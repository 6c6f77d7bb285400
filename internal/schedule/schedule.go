// Package schedule decides which tasks fall on a date and lays them out as
// a daily timeline.
package schedule

import (
	"fmt"
	"sort"

	"task-tracker/internal/datetime"
	"task-tracker/internal/domain"
)

// NoTasksMessage is the only line of an empty timeline.
const NoTasksMessage = "No tasks scheduled for this date."

const (
	allDayHeader = "All Day:"
	bullet       = "  • "
	gapMinutes   = 60
)

// IndexedTask pairs a task with its 1-based position in the full list.
type IndexedTask struct {
	Task  domain.Task
	Index int
}

// Entry is one task placed on a timeline.
type Entry struct {
	Task   domain.Task
	Index  int
	Time   datetime.TimeOfDay
	AllDay bool
}

// OccursOn reports whether when falls on date. To-dos never do; deadlines
// on their due date; events on every date from start to end inclusive.
func OccursOn(when domain.TimeSpec, date datetime.Date) bool {
	switch w := when.(type) {
	case domain.Deadline:
		return w.By.Date().Equal(date)
	case domain.Event:
		return !date.Before(w.From.Date()) && !date.After(w.To.Date())
	default:
		return false
	}
}

// IsAllDay treats a 00:00 time as "no particular time". A deadline due
// at midnight is therefore shown as all-day. Events need both ends at 00:00.
func IsAllDay(when domain.TimeSpec) bool {
	switch w := when.(type) {
	case domain.Deadline:
		return w.By.TimeOfDay().IsMidnight()
	case domain.Event:
		return w.From.TimeOfDay().IsMidnight() && w.To.TimeOfDay().IsMidnight()
	default:
		return true
	}
}

// SortTime is the event start, the deadline due time, or midnight for to-dos.
func SortTime(when domain.TimeSpec) datetime.TimeOfDay {
	switch w := when.(type) {
	case domain.Deadline:
		return w.By.TimeOfDay()
	case domain.Event:
		return w.From.TimeOfDay()
	default:
		return datetime.Midnight
	}
}

// NewEntry places an indexed task on the timeline.
func NewEntry(it IndexedTask) Entry {
	return Entry{
		Task:   it.Task,
		Index:  it.Index,
		Time:   SortTime(it.Task.When),
		AllDay: IsAllDay(it.Task.When),
	}
}

// Filter keeps the tasks occurring on date, numbering them by their
// position in tasks.
func Filter(tasks []domain.Task, date datetime.Date) []IndexedTask {
	var out []IndexedTask
	for i, t := range tasks {
		if OccursOn(t.When, date) {
			out = append(out, IndexedTask{Task: t, Index: i + 1})
		}
	}
	return out
}

// Title is the first line of a non-empty timeline.
func Title(date datetime.Date) string {
	return fmt.Sprintf("Daily Schedule for %s:", datetime.FormatDate(date.StartOfDay()))
}

// BuildTimeline renders the tasks on date: a title, all-day tasks under
// one header, then timed tasks in time order, each under its own HH:mm
// header. A blank line separates timed entries more than an hour apart.
func BuildTimeline(tasks []IndexedTask, date datetime.Date) []string {
	if len(tasks) == 0 {
		return []string{NoTasksMessage}
	}

	var allDay, timed []Entry
	for _, it := range tasks {
		e := NewEntry(it)
		if e.AllDay {
			allDay = append(allDay, e)
		} else {
			timed = append(timed, e)
		}
	}
	sort.SliceStable(timed, func(i, j int) bool {
		return timed[i].Time.Minutes() < timed[j].Time.Minutes()
	})

	lines := []string{Title(date), ""}
	if len(allDay) > 0 {
		lines = append(lines, allDayHeader)
		for _, e := range allDay {
			lines = append(lines, entryLine(e))
		}
	}

	for i, e := range timed {
		if i > 0 && e.Time.Minutes()-timed[i-1].Time.Minutes() > gapMinutes {
			lines = append(lines, "")
		}
		lines = append(lines, e.Time.String()+":")
		line := entryLine(e)
		if ev, ok := e.Task.When.(domain.Event); ok {
			line += fmt.Sprintf(" (until %s)", datetime.FormatTime(ev.To))
		}
		lines = append(lines, line)
	}
	return lines
}

func entryLine(e Entry) string {
	return fmt.Sprintf("%s%d. %s", bullet, e.Index, e.Task)
}
