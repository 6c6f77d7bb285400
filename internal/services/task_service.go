package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"task-tracker/internal/datetime"
	"task-tracker/internal/domain"
	"task-tracker/internal/errors"
	"task-tracker/internal/logging"
	"task-tracker/internal/repository"
	"task-tracker/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo          repository.Repository
	parser        *datetime.Parser
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
}

// NewTaskService creates a new TaskService instance
func NewTaskService(repo repository.Repository, parser *datetime.Parser, taskValidator *validation.TaskValidator) TaskService {
	if taskValidator == nil {
		taskValidator = validation.NewTaskValidator()
	}
	return &taskServiceImpl{
		repo:          repo,
		parser:        parser,
		mapper:        domain.NewMapper(),
		taskValidator: taskValidator,
	}
}

// asAppError lifts a ValidationError into an AppError carrying its
// user-facing message. Other errors pass through.
func asAppError(err error) error {
	var ve *validation.ValidationError
	if stderrors.As(err, &ve) {
		return errors.NewValidationError(ve.GetUserFriendlyMessage(), ve)
	}
	return err
}

// validateAndTrimDescription validates and trims a task description
func (t *taskServiceImpl) validateAndTrimDescription(description string) (string, error) {
	trimmed, err := t.taskValidator.GetValidDescription(description)
	if err != nil {
		return "", asAppError(err)
	}
	return trimmed, nil
}

// parseDateArg parses a date/time argument after checking one was given
func (t *taskServiceImpl) parseDateArg(field, text string) (datetime.Timestamp, error) {
	if err := t.taskValidator.ValidateDateText(field, text); err != nil {
		return datetime.Timestamp{}, asAppError(err)
	}
	return t.parser.ParseDateTime(text)
}

func (t *taskServiceImpl) AddTodo(ctx context.Context, description string, opts AddOptions) (*TaskChange, error) {
	desc, err := t.validateAndTrimDescription(description)
	if err != nil {
		return nil, err
	}
	return t.add(ctx, domain.NewTask(desc, domain.Todo{}), opts)
}

func (t *taskServiceImpl) AddDeadline(ctx context.Context, description, by string, opts AddOptions) (*TaskChange, error) {
	desc, err := t.validateAndTrimDescription(description)
	if err != nil {
		return nil, err
	}
	due, err := t.parseDateArg("deadline", by)
	if err != nil {
		return nil, err
	}
	return t.add(ctx, domain.NewTask(desc, domain.Deadline{By: due}), opts)
}

func (t *taskServiceImpl) AddEvent(ctx context.Context, description, from, to string, opts AddOptions) (*TaskChange, error) {
	desc, err := t.validateAndTrimDescription(description)
	if err != nil {
		return nil, err
	}
	start, err := t.parseDateArg("event_start", from)
	if err != nil {
		return nil, err
	}
	end, err := t.parseDateArg("event_end", to)
	if err != nil {
		return nil, err
	}
	ev, err := domain.NewEvent(start, end)
	if err != nil {
		return nil, err
	}
	return t.add(ctx, domain.NewTask(desc, ev), opts)
}

func (t *taskServiceImpl) add(ctx context.Context, task domain.Task, opts AddOptions) (*TaskChange, error) {
	if opts.Priority != nil {
		task.Priority = *opts.Priority
	} else {
		task.Priority = domain.SuggestPriority(task.Description)
	}
	if err := t.taskValidator.ValidateTask(task); err != nil {
		return nil, asAppError(err)
	}

	rec := t.mapper.Task.ToRecord(task)
	if err := t.repo.CreateTask(ctx, &rec); err != nil {
		return nil, err
	}
	task.ID = rec.ID

	all, err := t.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	logging.Debugf("tasks: added %s task %d", task.Kind().Name(), task.ID)
	return &TaskChange{Task: TaskLine{Index: len(all), Task: task}, Count: len(all)}, nil
}

func (t *taskServiceImpl) List(ctx context.Context) ([]TaskLine, error) {
	recs, err := t.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return t.lines(recs), nil
}

func (t *taskServiceImpl) lines(recs []*repository.Task) []TaskLine {
	tasks := t.mapper.Task.FromRecords(recs)
	out := make([]TaskLine, len(tasks))
	for i, task := range tasks {
		out[i] = TaskLine{Index: i + 1, Task: task}
	}
	return out
}

func (t *taskServiceImpl) Get(ctx context.Context, index int) (*TaskLine, error) {
	all, err := t.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := t.taskValidator.ValidateIndex(index, len(all)); err != nil {
		return nil, err
	}
	line := all[index-1]
	return &line, nil
}

// Find keeps the tasks whose description contains keyword, ignoring case.
// A blank keyword matches nothing.
func (t *taskServiceImpl) Find(ctx context.Context, keyword string) ([]TaskLine, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []TaskLine{}, nil
	}
	return t.Search(ctx, domain.SearchOptions{Keyword: &keyword})
}

// Search filters through the repository and keeps each task's position in
// the full list as its index.
func (t *taskServiceImpl) Search(ctx context.Context, opts domain.SearchOptions) ([]TaskLine, error) {
	all, err := t.List(ctx)
	if err != nil {
		return nil, err
	}
	if opts.IsEmpty() {
		return all, nil
	}

	matches, err := t.repo.SearchTasks(ctx, t.mapper.SearchOptions.ToRecord(opts))
	if err != nil {
		return nil, err
	}
	wanted := make(map[int64]bool, len(matches))
	for _, m := range matches {
		wanted[m.ID] = true
	}

	out := []TaskLine{}
	for _, line := range all {
		if wanted[line.Task.ID] {
			out = append(out, line)
		}
	}
	return out, nil
}

func (t *taskServiceImpl) Mark(ctx context.Context, index int) (*TaskLine, error) {
	return t.setDone(ctx, index, true)
}

func (t *taskServiceImpl) Unmark(ctx context.Context, index int) (*TaskLine, error) {
	return t.setDone(ctx, index, false)
}

func (t *taskServiceImpl) setDone(ctx context.Context, index int, done bool) (*TaskLine, error) {
	line, err := t.Get(ctx, index)
	if err != nil {
		return nil, err
	}
	if line.Task.Done == done {
		msg := fmt.Sprintf("Task %d is already marked as done!", index)
		if !done {
			msg = fmt.Sprintf("Task %d is not marked as done yet!", index)
		}
		return nil, errors.NewValidationError(msg, nil).WithContext("index", index)
	}
	line.Task.Done = done
	if err := t.update(ctx, line.Task); err != nil {
		return nil, err
	}
	return line, nil
}

func (t *taskServiceImpl) SetPriority(ctx context.Context, index int, priority domain.Priority) (*TaskLine, error) {
	line, err := t.Get(ctx, index)
	if err != nil {
		return nil, err
	}
	line.Task.Priority = priority
	if err := t.update(ctx, line.Task); err != nil {
		return nil, err
	}
	return line, nil
}

func (t *taskServiceImpl) update(ctx context.Context, task domain.Task) error {
	rec := t.mapper.Task.ToRecord(task)
	return t.repo.UpdateTask(ctx, &rec)
}

func (t *taskServiceImpl) Delete(ctx context.Context, index int) (*TaskChange, error) {
	all, err := t.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := t.taskValidator.ValidateIndex(index, len(all)); err != nil {
		return nil, err
	}
	line := all[index-1]
	if err := t.repo.DeleteTask(ctx, line.Task.ID); err != nil {
		return nil, err
	}
	logging.Debugf("tasks: deleted task %d at index %d", line.Task.ID, index)
	return &TaskChange{Task: line, Count: len(all) - 1}, nil
}

// Clear removes every task and reports how many there were.
func (t *taskServiceImpl) Clear(ctx context.Context) (int, error) {
	all, err := t.repo.ListTasks(ctx)
	if err != nil {
		return 0, err
	}
	if err := t.repo.DeleteAllTasks(ctx); err != nil {
		return 0, err
	}
	return len(all), nil
}
