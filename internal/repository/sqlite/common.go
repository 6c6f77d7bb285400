package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	apperrors "task-tracker/internal/errors"
)

// HandleDatabaseError converts a driver error into a storage AppError.
func HandleDatabaseError(operation string, err error) error {
	return apperrors.NewStorageError(operation, err)
}

// HandleNoRowsError maps sql.ErrNoRows to a not-found error for the task id.
func HandleNoRowsError(err error, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NewNotFoundError("task", strconv.FormatInt(id, 10))
	}
	return err
}

// ValidateRowsAffected fails with not-found when the statement touched no row.
func ValidateRowsAffected(result sql.Result, id int64) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return HandleDatabaseError("get rows affected", err)
	}
	if rows == 0 {
		return apperrors.NewNotFoundError("task", strconv.FormatInt(id, 10))
	}
	return nil
}

// ExecuteWithLastInsertID executes a query and returns the last insert ID
func ExecuteWithLastInsertID(ctx context.Context, db *sql.DB, query string, args ...interface{}) (int64, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, HandleDatabaseError("insert task", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, HandleDatabaseError("get last insert ID", err)
	}

	return id, nil
}

// ExecuteWithRowsAffected executes a statement addressed to one task id and
// fails with not-found when no row matched.
func ExecuteWithRowsAffected(ctx context.Context, db *sql.DB, query string, id int64, args ...interface{}) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return HandleDatabaseError("update task", err)
	}

	return ValidateRowsAffected(result, id)
}

// QuerySingle executes a query that returns a single row and scans it
func QuerySingle[T any](ctx context.Context, db *sql.DB, query string, scanFunc func(Scanner) (*T, error), id int64, args ...interface{}) (*T, error) {
	row := db.QueryRowContext(ctx, query, args...)
	result, err := scanFunc(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, HandleNoRowsError(err, id)
		}
		return nil, HandleDatabaseError("scan task", err)
	}
	return result, nil
}

// QueryMultiple executes a query that returns multiple rows and scans them
func QueryMultiple[T any](ctx context.Context, db *sql.DB, query string, scanFunc func(Rows) ([]*T, error), args ...interface{}) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, HandleDatabaseError("query tasks", err)
	}
	defer rows.Close()

	results, err := scanFunc(rows)
	if err != nil {
		return nil, HandleDatabaseError("scan tasks", err)
	}

	return results, nil
}
