package sqlite

import (
	"database/sql"

	"task-tracker/internal/datetime"
)

// FormatTimestampForDB writes the ISO local date-time form, or NULL for an
// unset timestamp.
func FormatTimestampForDB(ts datetime.Timestamp) interface{} {
	if ts.IsZero() {
		return nil
	}
	return datetime.FormatISO(ts)
}

// ParseTimestampFromDB reads a nullable column written by FormatTimestampForDB.
func ParseTimestampFromDB(s sql.NullString) (datetime.Timestamp, error) {
	if !s.Valid || s.String == "" {
		return datetime.Timestamp{}, nil
	}
	return datetime.ParseISO(s.String)
}
