package services

import (
	"context"
	"fmt"
	"strings"

	"task-tracker/internal/datetime"
	"task-tracker/internal/domain"
	"task-tracker/internal/repository"
	"task-tracker/internal/schedule"
)

const maxSuggestions = 3

// suggestionServiceImpl implements the SuggestionService interface
type suggestionServiceImpl struct {
	repo   repository.Repository
	parser *datetime.Parser
	mapper *domain.Mapper
}

// NewSuggestionService creates a new SuggestionService instance
func NewSuggestionService(repo repository.Repository, parser *datetime.Parser) SuggestionService {
	return &suggestionServiceImpl{
		repo:   repo,
		parser: parser,
		mapper: domain.NewMapper(),
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// Suggestions returns at most three hints, most urgent first.
func (s *suggestionServiceImpl) Suggestions(ctx context.Context) ([]string, error) {
	recs, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	tasks := s.mapper.Task.FromRecords(recs)

	if len(tasks) == 0 {
		return []string{
			"Start by adding your first task: 'tk todo <description>'",
			"Set a deadline: 'tk deadline Submit report --by \"tomorrow 5pm\"'",
			"Plan an event: 'tk event Team meeting --from \"today 2pm\" --to \"today 3pm\"'",
		}, nil
	}

	now := s.parser.Now()
	var done, highPending, overdue int
	for _, t := range tasks {
		if t.Done {
			done++
			continue
		}
		if t.Priority == domain.PriorityHigh {
			highPending++
		}
		if _, ok := t.When.(domain.Deadline); ok && t.IsOverdue(now) {
			overdue++
		}
	}

	var out []string
	if overdue > 0 {
		out = append(out, fmt.Sprintf("You have %d overdue task%s! Consider reviewing your priorities.", overdue, plural(overdue)))
	}
	if highPending > 0 {
		out = append(out, fmt.Sprintf("Focus on your %d high-priority task%s first!", highPending, plural(highPending)))
	}

	rate := float64(done) / float64(len(tasks))
	switch {
	case rate < 0.3:
		out = append(out,
			"Break down large tasks into smaller, manageable steps",
			"Try focusing on completing 2-3 tasks today")
	case rate > 0.8:
		out = append(out,
			"Great progress! Keep it up!",
			"Consider adding some stretch goals")
	}

	switch hour := now.TimeOfDay().Hour; {
	case hour < 12:
		out = append(out, "Good morning! Plan your day with 'tk schedule today'")
	case hour < 18:
		out = append(out, "Check your afternoon schedule with 'tk schedule today'")
	default:
		out = append(out, "Review today's accomplishments and plan for tomorrow")
	}

	if len(tasks) > 10 {
		out = append(out,
			"Use 'tk find <keyword>' to quickly locate specific tasks",
			"Organize your week with 'tk schedule <date>'")
	}

	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out, nil
}

// freeWindows are checked in order. A window is free when no timed task
// on the date starts strictly inside it.
var freeWindows = []struct {
	from, to int // minutes since midnight
	message  string
}{
	{0, 9 * 60, "Early morning (08:00-09:00) looks free, good for focused work"},
	{10 * 60, 12 * 60, "Late morning (10:00-12:00) is available for important tasks"},
	{14 * 60, 16 * 60, "Afternoon (14:00-16:00) is open for meetings or collaborative work"},
}

// FreeSlots suggests open windows on the date (today when blank). All-day
// tasks do not occupy any window.
func (s *suggestionServiceImpl) FreeSlots(ctx context.Context, dateText string) ([]string, error) {
	date, err := dateOrToday(s.parser, dateText)
	if err != nil {
		return nil, err
	}
	recs, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	var busy []int
	for _, it := range schedule.Filter(s.mapper.Task.FromRecords(recs), date) {
		if schedule.IsAllDay(it.Task.When) {
			continue
		}
		busy = append(busy, schedule.SortTime(it.Task.When).Minutes())
	}

	out := []string{}
	for _, w := range freeWindows {
		free := true
		for _, m := range busy {
			if (w.from == 0 && m < w.to) || (m > w.from && m < w.to) {
				free = false
				break
			}
		}
		if free {
			out = append(out, w.message)
		}
	}
	return out, nil
}

func containsAny(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// Improvements suggests how a task description could be made more useful.
func (s *suggestionServiceImpl) Improvements(description string) []string {
	out := []string{}
	lower := strings.ToLower(strings.TrimSpace(description))

	if len([]rune(lower)) < 10 {
		out = append(out, "Consider adding more details to make the task clearer")
	}
	if !containsAny(lower, "by", "deadline", "due") {
		out = append(out, fmt.Sprintf("Consider setting a deadline: 'tk deadline %s --by <date>'", description))
	}
	if containsAny(lower, "meeting", "call", "appointment") {
		out = append(out, fmt.Sprintf("This looks like an event! Try: 'tk event %s --from <start> --to <end>'", description))
	}
	if containsAny(lower, "later", "someday", "eventually", "maybe") {
		out = append(out, "Try to be more specific about when you'll do this task")
	}
	return out
}
