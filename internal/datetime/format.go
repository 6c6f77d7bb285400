package datetime

import (
	"strings"
	"time"

	apperrors "task-tracker/internal/errors"
)

// Display layouts. Go's reference month names are always English.
const (
	dateTimeLayout = "Jan 02 2006, 15:04"
	dateLayout     = "Jan 02 2006"
	timeLayout     = "15:04"
)

// Storage layouts: ISO-8601 local date-time. Seconds are written never
// and accepted on read.
const (
	isoLayout        = "2006-01-02T15:04"
	isoSecondsLayout = "2006-01-02T15:04:05"
)

// FormatDateTime renders "Dec 15 2024, 18:00".
func FormatDateTime(ts Timestamp) string {
	return ts.utc().Format(dateTimeLayout)
}

// FormatDate renders "Dec 15 2024".
func FormatDate(ts Timestamp) string {
	return ts.utc().Format(dateLayout)
}

// FormatTime renders "18:00".
func FormatTime(ts Timestamp) string {
	return ts.utc().Format(timeLayout)
}

// FormatISO renders the persisted form, e.g. "2024-12-15T18:00".
func FormatISO(ts Timestamp) string {
	return ts.utc().Format(isoLayout)
}

// ParseISO reads a value written by FormatISO. A seconds field is accepted
// and dropped.
func ParseISO(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{isoLayout, isoSecondsLayout} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return FromTime(t), nil
		}
	}
	return Timestamp{}, apperrors.NewInvalidInputError("timestamp", s, "expected yyyy-MM-ddTHH:mm")
}
