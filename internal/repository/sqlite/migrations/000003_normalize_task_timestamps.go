package migrations

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"task-tracker/internal/datetime"
	"task-tracker/internal/logging"
)

func init() {
	RegisterGoMigration(3, Up_000003_normalize_task_timestamps, Down_000003_normalize_task_timestamps)
}

var timestampColumns = []string{"due_at", "starts_at", "ends_at"}

// Up_000003_normalize_task_timestamps rewrites every task timestamp into the
// canonical yyyy-MM-ddTHH:mm form. Rows written with seconds, a space
// separator or an RFC3339 offset are converted; values that cannot be read
// are left untouched and reported.
func Up_000003_normalize_task_timestamps(tx *sql.Tx) error {
	type value struct {
		id  int64
		col string
		raw string
	}
	var values []value

	for _, col := range timestampColumns {
		rows, err := tx.Query(fmt.Sprintf("SELECT id, %s FROM tasks WHERE %s IS NOT NULL", col, col))
		if err != nil {
			return fmt.Errorf("failed to query %s: %w", col, err)
		}
		for rows.Next() {
			v := value{col: col}
			if err := rows.Scan(&v.id, &v.raw); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan %s: %w", col, err)
			}
			values = append(values, v)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return fmt.Errorf("error iterating %s: %w", col, err)
		}
		rows.Close()
	}

	updated, skipped := 0, 0
	for _, v := range values {
		canonical, err := normalizeTimestamp(v.raw)
		if err != nil {
			logging.Debugf("migration 3: leaving task %d %s=%q: %v", v.id, v.col, v.raw, err)
			skipped++
			continue
		}
		if canonical == v.raw {
			continue
		}
		if _, err := tx.Exec(fmt.Sprintf("UPDATE tasks SET %s = ? WHERE id = ?", v.col), canonical, v.id); err != nil {
			return fmt.Errorf("failed to update %s for task %d: %w", v.col, v.id, err)
		}
		updated++
	}

	logging.Debugf("migration 3: normalized %d timestamps, skipped %d", updated, skipped)
	return nil
}

// Down_000003_normalize_task_timestamps is a no-op: canonical values are
// readable by every earlier schema version.
func Down_000003_normalize_task_timestamps(tx *sql.Tx) error {
	return nil
}

// normalizeTimestamp converts the accepted legacy layouts to the canonical form.
func normalizeTimestamp(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if ts, err := datetime.ParseISO(s); err == nil {
		return datetime.FormatISO(ts), nil
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return datetime.FormatISO(datetime.FromTime(t)), nil
		}
	}
	return "", fmt.Errorf("unrecognised timestamp %q", raw)
}
