// Package textfile stores tasks in the line-oriented format
//
//	T | 0 | read book
//	D | 1 | return book | 2024-12-15T18:00
//	E | 0 | project meeting | 2024-12-20T14:00 | 2024-12-20T16:00
//
// with an optional trailing "p=N" field carrying the priority. Lines that
// cannot be read are skipped on load and dropped on the next save.
package textfile

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"task-tracker/internal/datetime"
	apperrors "task-tracker/internal/errors"
	"task-tracker/internal/logging"
	"task-tracker/internal/repository"
)

const (
	separator      = " | "
	priorityPrefix = "p="
)

// Repository keeps every task in memory and rewrites the whole file after
// each change. IDs are line numbers at load time and are not persisted.
type Repository struct {
	mu      sync.Mutex
	path    string
	dirPerm os.FileMode
	tasks   []*repository.Task
	nextID  int64
	skipped int
}

var _ repository.Repository = (*Repository)(nil)

// New loads path, creating the file and its directory if missing.
func New(path string, dirPerm os.FileMode) (*Repository, error) {
	if dirPerm == 0 {
		dirPerm = 0o755
	}
	r := &Repository{path: path, dirPerm: dirPerm, nextID: 1}
	if err := r.load(); err != nil {
		return nil, err
	}
	logging.Debugf("textfile: loaded %d tasks from %s (%d lines skipped)", len(r.tasks), path, r.skipped)
	return r, nil
}

// Skipped reports how many unreadable lines the last load ignored.
func (r *Repository) Skipped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.skipped
}

func (r *Repository) load() error {
	if err := os.MkdirAll(filepath.Dir(r.path), r.dirPerm); err != nil {
		return apperrors.NewStorageError("create data directory", err)
	}
	f, err := os.OpenFile(r.path, os.O_RDONLY|os.O_CREATE, 0o644)
	if err != nil {
		return apperrors.NewStorageError("open task file", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		task, err := DecodeLine(line)
		if err != nil {
			logging.Debugf("textfile: skipping line %d: %v", lineNo, err)
			r.skipped++
			continue
		}
		task.ID = r.nextID
		r.nextID++
		r.tasks = append(r.tasks, task)
	}
	if err := scanner.Err(); err != nil {
		return apperrors.NewStorageError("read task file", err)
	}
	return nil
}

// save writes to a temporary file and renames it over the original.
func (r *Repository) save() error {
	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return apperrors.NewStorageError("save tasks", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, task := range r.tasks {
		line, err := EncodeLine(task)
		if err != nil {
			tmp.Close()
			return apperrors.NewStorageError("save tasks", err)
		}
		fmt.Fprintln(w, line)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return apperrors.NewStorageError("save tasks", err)
	}
	if err := tmp.Close(); err != nil {
		return apperrors.NewStorageError("save tasks", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return apperrors.NewStorageError("save tasks", err)
	}
	return nil
}

func (r *Repository) indexOf(id int64) int {
	for i, t := range r.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func notFound(id int64) error {
	return apperrors.NewNotFoundError("task", strconv.FormatInt(id, 10))
}

func clone(t *repository.Task) *repository.Task {
	c := *t
	return &c
}

func (r *Repository) CreateTask(ctx context.Context, task *repository.Task) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewTimeoutError("create task", err.Error())
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := clone(task)
	stored.ID = r.nextID
	r.tasks = append(r.tasks, stored)
	if err := r.save(); err != nil {
		r.tasks = r.tasks[:len(r.tasks)-1]
		return err
	}
	r.nextID++
	task.ID = stored.ID
	return nil
}

func (r *Repository) GetTask(ctx context.Context, id int64) (*repository.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewTimeoutError("get task", err.Error())
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, notFound(id)
	}
	return clone(r.tasks[i]), nil
}

func (r *Repository) ListTasks(ctx context.Context) ([]*repository.Task, error) {
	return r.SearchTasks(ctx, repository.SearchOptions{})
}

func (r *Repository) SearchTasks(ctx context.Context, opts repository.SearchOptions) ([]*repository.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewTimeoutError("list tasks", err.Error())
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*repository.Task
	for _, t := range r.tasks {
		if opts.Matches(t) {
			out = append(out, clone(t))
		}
	}
	return out, nil
}

func (r *Repository) UpdateTask(ctx context.Context, task *repository.Task) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewTimeoutError("update task", err.Error())
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(task.ID)
	if i < 0 {
		return notFound(task.ID)
	}
	previous := r.tasks[i]
	r.tasks[i] = clone(task)
	if err := r.save(); err != nil {
		r.tasks[i] = previous
		return err
	}
	return nil
}

func (r *Repository) DeleteTask(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewTimeoutError("delete task", err.Error())
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return notFound(id)
	}
	previous := r.tasks
	r.tasks = append(append([]*repository.Task{}, r.tasks[:i]...), r.tasks[i+1:]...)
	if err := r.save(); err != nil {
		r.tasks = previous
		return err
	}
	return nil
}

func (r *Repository) DeleteAllTasks(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewTimeoutError("delete all tasks", err.Error())
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	previous := r.tasks
	r.tasks = nil
	if err := r.save(); err != nil {
		r.tasks = previous
		return err
	}
	return nil
}

// Close is a no-op; every change is already on disk.
func (r *Repository) Close() error {
	return nil
}

// EncodeLine renders one task in the storage format.
func EncodeLine(t *repository.Task) (string, error) {
	if strings.Contains(t.Description, "|") {
		return "", fmt.Errorf("description %q contains '|'", t.Description)
	}
	done := "0"
	if t.Done {
		done = "1"
	}

	fields := []string{t.Kind, done, t.Description}
	switch t.Kind {
	case "T":
	case "D":
		fields = append(fields, datetime.FormatISO(t.By))
	case "E":
		fields = append(fields, datetime.FormatISO(t.From), datetime.FormatISO(t.To))
	default:
		return "", fmt.Errorf("unknown task kind %q", t.Kind)
	}
	if t.Priority != 0 {
		fields = append(fields, priorityPrefix+strconv.Itoa(t.Priority))
	}
	return strings.Join(fields, separator), nil
}

// DecodeLine parses one line written by EncodeLine or the older format
// without priorities. An unknown kind letter is read as a to-do.
func DecodeLine(line string) (*repository.Task, error) {
	parts := strings.Split(line, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 3 {
		return nil, fmt.Errorf("expected at least 3 fields, got %d", len(parts))
	}
	if parts[2] == "" {
		return nil, fmt.Errorf("empty description")
	}

	task := &repository.Task{
		Kind:        parts[0],
		Done:        parts[1] == "1",
		Description: parts[2],
	}
	rest := parts[3:]

	var err error
	switch task.Kind {
	case "D":
		if len(rest) < 1 {
			return nil, fmt.Errorf("deadline without due time")
		}
		if task.By, err = datetime.ParseISO(rest[0]); err != nil {
			return nil, err
		}
		rest = rest[1:]
	case "E":
		if len(rest) < 2 {
			return nil, fmt.Errorf("event without start and end")
		}
		if task.From, err = datetime.ParseISO(rest[0]); err != nil {
			return nil, err
		}
		if task.To, err = datetime.ParseISO(rest[1]); err != nil {
			return nil, err
		}
		rest = rest[2:]
	default:
		task.Kind = "T"
	}

	for _, extra := range rest {
		if p, ok := strings.CutPrefix(extra, priorityPrefix); ok {
			if n, convErr := strconv.Atoi(p); convErr == nil && n >= 0 && n <= 3 {
				task.Priority = n
			}
		}
	}
	return task, nil
}
