package services

import (
	"context"
	"strings"

	"task-tracker/internal/datetime"
	"task-tracker/internal/domain"
	"task-tracker/internal/repository"
	"task-tracker/internal/schedule"
)

// scheduleServiceImpl implements the ScheduleService interface
type scheduleServiceImpl struct {
	repo   repository.Repository
	parser *datetime.Parser
	mapper *domain.Mapper
}

// NewScheduleService creates a new ScheduleService instance
func NewScheduleService(repo repository.Repository, parser *datetime.Parser) ScheduleService {
	return &scheduleServiceImpl{
		repo:   repo,
		parser: parser,
		mapper: domain.NewMapper(),
	}
}

// resolveDay parses dateText and loads the tasks occurring on that date.
func (s *scheduleServiceImpl) resolveDay(ctx context.Context, dateText string) (datetime.Date, []schedule.IndexedTask, error) {
	ts, err := s.parser.ParseDateTime(dateText)
	if err != nil {
		return datetime.Date{}, nil, err
	}
	date := ts.Date()

	recs, err := s.repo.ListTasks(ctx)
	if err != nil {
		return datetime.Date{}, nil, err
	}
	return date, schedule.Filter(s.mapper.Task.FromRecords(recs), date), nil
}

func (s *scheduleServiceImpl) TasksOn(ctx context.Context, dateText string) (*DayView, error) {
	date, tasks, err := s.resolveDay(ctx, dateText)
	if err != nil {
		return nil, err
	}
	lines := make([]string, len(tasks))
	for i, it := range tasks {
		lines[i] = TaskLine{Index: it.Index, Task: it.Task}.String()
	}
	return &DayView{Date: date, Label: dayLabel(date), Lines: lines}, nil
}

func (s *scheduleServiceImpl) Schedule(ctx context.Context, dateText string) (*DayView, error) {
	date, tasks, err := s.resolveDay(ctx, dateText)
	if err != nil {
		return nil, err
	}
	return &DayView{Date: date, Label: dayLabel(date), Lines: schedule.BuildTimeline(tasks, date)}, nil
}

func dayLabel(date datetime.Date) string {
	return datetime.FormatDate(date.StartOfDay())
}

// dateOrToday parses dateText, defaulting to the parser's today when blank.
func dateOrToday(parser *datetime.Parser, dateText string) (datetime.Date, error) {
	if strings.TrimSpace(dateText) == "" {
		return parser.Now().Date(), nil
	}
	ts, err := parser.ParseDateTime(dateText)
	if err != nil {
		return datetime.Date{}, err
	}
	return ts.Date(), nil
}
