package sqlite

import (
	"context"
	"database/sql"
	"strings"

	apperrors "task-tracker/internal/errors"
	"task-tracker/internal/logging"
	"task-tracker/internal/repository"
	"task-tracker/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// SQLiteRepository implements repository.Repository on a SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

var _ repository.Repository = (*SQLiteRepository)(nil)

// New opens (creating if needed) the database at dbPath and migrates it.
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, apperrors.NewStorageError("open database", err)
	}
	// One connection keeps ":memory:" databases alive across queries.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, apperrors.NewStorageError("run migrations", err)
	}

	logging.Debugf("sqlite: opened %s", dbPath)
	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateTask inserts task and sets its ID.
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *repository.Task) error {
	query := `
	INSERT INTO tasks (kind, description, done, priority, due_at, starts_at, ends_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		task.Kind, task.Description, task.Done, task.Priority,
		FormatTimestampForDB(task.By), FormatTimestampForDB(task.From), FormatTimestampForDB(task.To))
	if err != nil {
		return err
	}

	task.ID = id
	return nil
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id int64) (*repository.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTask, id, id)
}

// ListTasks returns every task in insertion order.
func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]*repository.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanTasks)
}

// SearchTasks returns the tasks matching opts in insertion order.
func (r *SQLiteRepository) SearchTasks(ctx context.Context, opts repository.SearchOptions) ([]*repository.Task, error) {
	var conditions []string
	var args []interface{}

	if opts.Keyword != nil && *opts.Keyword != "" {
		conditions = append(conditions, "LOWER(description) LIKE ? ESCAPE '\\'")
		args = append(args, "%"+escapeLike(strings.ToLower(*opts.Keyword))+"%")
	}
	if opts.Kind != nil {
		conditions = append(conditions, "kind = ?")
		args = append(args, *opts.Kind)
	}
	if opts.Done != nil {
		conditions = append(conditions, "done = ?")
		args = append(args, *opts.Done)
	}
	if opts.MinPriority != nil {
		conditions = append(conditions, "priority >= ?")
		args = append(args, *opts.MinPriority)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id ASC"

	return QueryMultiple(ctx, r.db, query, ScanTasks, args...)
}

// UpdateTask overwrites every column of the task with task.ID.
func (r *SQLiteRepository) UpdateTask(ctx context.Context, task *repository.Task) error {
	query := `
	UPDATE tasks
	SET kind = ?, description = ?, done = ?, priority = ?, due_at = ?, starts_at = ?, ends_at = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, task.ID,
		task.Kind, task.Description, task.Done, task.Priority,
		FormatTimestampForDB(task.By), FormatTimestampForDB(task.From), FormatTimestampForDB(task.To),
		task.ID)
}

// DeleteTask deletes a task by ID
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id int64) error {
	query := `DELETE FROM tasks WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, id, id)
}

// DeleteAllTasks empties the table.
func (r *SQLiteRepository) DeleteAllTasks(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return HandleDatabaseError("delete all tasks", err)
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
