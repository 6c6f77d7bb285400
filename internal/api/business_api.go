package api

import (
	"context"
	"io"
	"strings"

	"task-tracker/internal/datetime"
	"task-tracker/internal/domain"
	"task-tracker/internal/errors"
	"task-tracker/internal/export"
	"task-tracker/internal/services"
)

// Statistics summarises the task list as of the clock's "now".
type Statistics struct {
	Total       int `json:"total"`
	Done        int `json:"done"`
	Pending     int `json:"pending"`
	Overdue     int `json:"overdue"`
	HighPending int `json:"high_pending"`
	Todos       int `json:"todos"`
	Deadlines   int `json:"deadlines"`
	Events      int `json:"events"`
}

// CompletionRate is Done/Total, or 0 for an empty list.
func (s Statistics) CompletionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Done) / float64(s.Total)
}

// SearchRequest is the raw text of a filtered find. Empty fields do not filter.
type SearchRequest struct {
	Keyword     string
	Kind        string
	Status      string // "done", "pending" or empty
	MinPriority string
}

// BusinessAPI is everything the command line can ask of the task tracker.
// Tasks are addressed by their 1-based display index.
type BusinessAPI interface {
	// ========== Task Management Workflows ==========

	// AddTodo, AddDeadline and AddEvent create a task. An empty priority
	// lets the tracker suggest one from the description.
	AddTodo(ctx context.Context, description, priority string) (*services.TaskChange, error)
	AddDeadline(ctx context.Context, description, by, priority string) (*services.TaskChange, error)
	AddEvent(ctx context.Context, description, from, to, priority string) (*services.TaskChange, error)

	MarkTask(ctx context.Context, index int) (*services.TaskLine, error)
	UnmarkTask(ctx context.Context, index int) (*services.TaskLine, error)
	SetPriority(ctx context.Context, index int, priority string) (*services.TaskLine, error)
	DeleteTask(ctx context.Context, index int) (*services.TaskChange, error)

	// ClearTasks deletes every task and returns how many there were.
	ClearTasks(ctx context.Context) (int, error)

	// ========== Query Operations ==========

	ListTasks(ctx context.Context) ([]services.TaskLine, error)
	GetTask(ctx context.Context, index int) (*services.TaskLine, error)
	FindTasks(ctx context.Context, keyword string) ([]services.TaskLine, error)
	SearchTasks(ctx context.Context, req SearchRequest) ([]services.TaskLine, error)

	// TasksOn lists the tasks occurring on a date; Schedule lays them out
	// as a timeline.
	TasksOn(ctx context.Context, dateText string) (*services.DayView, error)
	Schedule(ctx context.Context, dateText string) (*services.DayView, error)

	// ========== Suggestions and Analytics ==========

	GetSuggestions(ctx context.Context) ([]string, error)
	// GetFreeSlots defaults to today when dateText is empty.
	GetFreeSlots(ctx context.Context, dateText string) ([]string, error)
	GetImprovements(description string) []string
	GetStatistics(ctx context.Context) (*Statistics, error)

	// ========== Export ==========

	// Export writes every task to w and returns how many were written.
	Export(ctx context.Context, format export.Format, w io.Writer) (int, error)
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	services *services.ServiceContainer
	parser   *datetime.Parser
}

// NewBusinessAPI creates a new BusinessAPI instance
func NewBusinessAPI(container *services.ServiceContainer, parser *datetime.Parser) BusinessAPI {
	return &businessAPIImpl{
		services: container,
		parser:   parser,
	}
}

func addOptions(priority string) (services.AddOptions, error) {
	if strings.TrimSpace(priority) == "" {
		return services.AddOptions{}, nil
	}
	p, err := parsePriority(priority)
	if err != nil {
		return services.AddOptions{}, err
	}
	return services.AddOptions{Priority: &p}, nil
}

func parsePriority(text string) (domain.Priority, error) {
	p, ok := domain.ParsePriority(text)
	if !ok {
		return domain.PriorityNone, errors.NewValidationError(
			"Unknown priority '"+strings.TrimSpace(text)+"'. Use high, medium, low or none.", nil).
			WithContext("priority", text)
	}
	return p, nil
}

// ========== Task Management Workflows ==========

func (b *businessAPIImpl) AddTodo(ctx context.Context, description, priority string) (*services.TaskChange, error) {
	opts, err := addOptions(priority)
	if err != nil {
		return nil, err
	}
	return b.services.TaskService.AddTodo(ctx, description, opts)
}

func (b *businessAPIImpl) AddDeadline(ctx context.Context, description, by, priority string) (*services.TaskChange, error) {
	opts, err := addOptions(priority)
	if err != nil {
		return nil, err
	}
	return b.services.TaskService.AddDeadline(ctx, description, by, opts)
}

func (b *businessAPIImpl) AddEvent(ctx context.Context, description, from, to, priority string) (*services.TaskChange, error) {
	opts, err := addOptions(priority)
	if err != nil {
		return nil, err
	}
	return b.services.TaskService.AddEvent(ctx, description, from, to, opts)
}

func (b *businessAPIImpl) MarkTask(ctx context.Context, index int) (*services.TaskLine, error) {
	return b.services.TaskService.Mark(ctx, index)
}

func (b *businessAPIImpl) UnmarkTask(ctx context.Context, index int) (*services.TaskLine, error) {
	return b.services.TaskService.Unmark(ctx, index)
}

func (b *businessAPIImpl) SetPriority(ctx context.Context, index int, priority string) (*services.TaskLine, error) {
	p, err := parsePriority(priority)
	if err != nil {
		return nil, err
	}
	return b.services.TaskService.SetPriority(ctx, index, p)
}

func (b *businessAPIImpl) DeleteTask(ctx context.Context, index int) (*services.TaskChange, error) {
	return b.services.TaskService.Delete(ctx, index)
}

func (b *businessAPIImpl) ClearTasks(ctx context.Context) (int, error) {
	return b.services.TaskService.Clear(ctx)
}

// ========== Query Operations ==========

func (b *businessAPIImpl) ListTasks(ctx context.Context) ([]services.TaskLine, error) {
	return b.services.TaskService.List(ctx)
}

func (b *businessAPIImpl) GetTask(ctx context.Context, index int) (*services.TaskLine, error) {
	return b.services.TaskService.Get(ctx, index)
}

func (b *businessAPIImpl) FindTasks(ctx context.Context, keyword string) ([]services.TaskLine, error) {
	return b.services.TaskService.Find(ctx, keyword)
}

func (b *businessAPIImpl) SearchTasks(ctx context.Context, req SearchRequest) ([]services.TaskLine, error) {
	opts, err := req.toOptions()
	if err != nil {
		return nil, err
	}
	return b.services.TaskService.Search(ctx, opts)
}

func (r SearchRequest) toOptions() (domain.SearchOptions, error) {
	var opts domain.SearchOptions
	if kw := strings.TrimSpace(r.Keyword); kw != "" {
		opts.Keyword = &kw
	}
	if r.Kind != "" {
		kind, ok := domain.ParseKind(r.Kind)
		if !ok {
			return opts, errors.NewValidationError(
				"Unknown task kind '"+r.Kind+"'. Use todo, deadline or event.", nil)
		}
		opts.Kind = &kind
	}
	switch strings.ToLower(strings.TrimSpace(r.Status)) {
	case "":
	case "done":
		done := true
		opts.Done = &done
	case "pending":
		done := false
		opts.Done = &done
	default:
		return opts, errors.NewValidationError(
			"Unknown status '"+r.Status+"'. Use done or pending.", nil)
	}
	if r.MinPriority != "" {
		p, err := parsePriority(r.MinPriority)
		if err != nil {
			return opts, err
		}
		opts.MinPriority = &p
	}
	return opts, nil
}

func (b *businessAPIImpl) TasksOn(ctx context.Context, dateText string) (*services.DayView, error) {
	return b.services.ScheduleService.TasksOn(ctx, dateText)
}

func (b *businessAPIImpl) Schedule(ctx context.Context, dateText string) (*services.DayView, error) {
	return b.services.ScheduleService.Schedule(ctx, dateText)
}

// ========== Suggestions and Analytics ==========

func (b *businessAPIImpl) GetSuggestions(ctx context.Context) ([]string, error) {
	return b.services.SuggestionService.Suggestions(ctx)
}

func (b *businessAPIImpl) GetFreeSlots(ctx context.Context, dateText string) ([]string, error) {
	return b.services.SuggestionService.FreeSlots(ctx, dateText)
}

func (b *businessAPIImpl) GetImprovements(description string) []string {
	return b.services.SuggestionService.Improvements(description)
}

func (b *businessAPIImpl) GetStatistics(ctx context.Context) (*Statistics, error) {
	lines, err := b.services.TaskService.List(ctx)
	if err != nil {
		return nil, err
	}

	now := b.parser.Now()
	stats := &Statistics{Total: len(lines)}
	for _, line := range lines {
		task := line.Task
		if task.Done {
			stats.Done++
		} else {
			stats.Pending++
			if task.Priority == domain.PriorityHigh {
				stats.HighPending++
			}
		}
		if task.IsOverdue(now) {
			stats.Overdue++
		}
		switch task.Kind() {
		case domain.KindTodo:
			stats.Todos++
		case domain.KindDeadline:
			stats.Deadlines++
		case domain.KindEvent:
			stats.Events++
		}
	}
	return stats, nil
}

// ========== Export ==========

func (b *businessAPIImpl) Export(ctx context.Context, format export.Format, w io.Writer) (int, error) {
	exporter, err := export.NewExporter(format)
	if err != nil {
		return 0, err
	}
	lines, err := b.services.TaskService.List(ctx)
	if err != nil {
		return 0, err
	}

	rows := make([]export.Row, len(lines))
	for i, line := range lines {
		rows[i] = export.NewRow(line.Index, line.Task)
	}
	if err := exporter.Export(w, rows); err != nil {
		return 0, errors.WrapError(err, errors.ErrorTypeStorage, "failed to export tasks as "+string(format))
	}
	return len(rows), nil
}
