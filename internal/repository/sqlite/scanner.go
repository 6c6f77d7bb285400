package sqlite

import (
	"database/sql"

	"task-tracker/internal/repository"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// taskColumns is the column list every task query selects, in ScanTask order.
const taskColumns = "id, kind, description, done, priority, due_at, starts_at, ends_at"

// ScanTask scans a single task from a database row
func ScanTask(scanner Scanner) (*repository.Task, error) {
	task := &repository.Task{}
	var dueAt, startsAt, endsAt sql.NullString

	err := scanner.Scan(
		&task.ID,
		&task.Kind,
		&task.Description,
		&task.Done,
		&task.Priority,
		&dueAt,
		&startsAt,
		&endsAt,
	)
	if err != nil {
		return nil, err
	}

	if task.By, err = ParseTimestampFromDB(dueAt); err != nil {
		return nil, err
	}
	if task.From, err = ParseTimestampFromDB(startsAt); err != nil {
		return nil, err
	}
	if task.To, err = ParseTimestampFromDB(endsAt); err != nil {
		return nil, err
	}
	return task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*repository.Task, error) {
	var tasks []*repository.Task
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
