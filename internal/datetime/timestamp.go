package datetime

import (
	"time"

	"task-tracker/internal/clock"
)

// Timestamp is a calendar date plus a time of day at minute precision.
// It carries no zone; every value is interpreted in the local zone.
// The zero value is "unset".
type Timestamp struct {
	date  Date
	clock TimeOfDay
}

// NewTimestamp validates every component. Out-of-range values fail with an
// INVALID_NUMERIC error rather than being normalised.
func NewTimestamp(year int, month time.Month, day, hour, minute int) (Timestamp, error) {
	d, err := NewDate(year, month, day)
	if err != nil {
		return Timestamp{}, err
	}
	t, err := NewTimeOfDay(hour, minute)
	if err != nil {
		return Timestamp{}, err
	}
	return d.At(t), nil
}

// FromTime truncates t to the minute in t's own location.
func FromTime(t time.Time) Timestamp {
	return DateOf(t).At(TimeOfDay{Hour: t.Hour(), Minute: t.Minute()})
}

// Now reads c and truncates to the minute.
func Now(c clock.Clock) Timestamp {
	return FromTime(c.Now())
}

func (ts Timestamp) Date() Date           { return ts.date }
func (ts Timestamp) TimeOfDay() TimeOfDay { return ts.clock }

// WithTimeOfDay keeps the date and replaces the time.
func (ts Timestamp) WithTimeOfDay(t TimeOfDay) Timestamp {
	return ts.date.At(t)
}

// Compare orders by date and then by time of day.
func (ts Timestamp) Compare(other Timestamp) int {
	if c := ts.date.Compare(other.date); c != 0 {
		return c
	}
	return sign(ts.clock.Minutes() - other.clock.Minutes())
}

func (ts Timestamp) Before(other Timestamp) bool { return ts.Compare(other) < 0 }
func (ts Timestamp) After(other Timestamp) bool  { return ts.Compare(other) > 0 }
func (ts Timestamp) Equal(other Timestamp) bool  { return ts == other }
func (ts Timestamp) IsZero() bool                { return ts == Timestamp{} }

// Std converts to a time.Time in the local zone.
func (ts Timestamp) Std() time.Time {
	return time.Date(ts.date.Year, ts.date.Month, ts.date.Day, ts.clock.Hour, ts.clock.Minute, 0, 0, time.Local)
}

// utc is used for formatting so that local DST gaps cannot shift the wall clock.
func (ts Timestamp) utc() time.Time {
	return time.Date(ts.date.Year, ts.date.Month, ts.date.Day, ts.clock.Hour, ts.clock.Minute, 0, 0, time.UTC)
}

func (ts Timestamp) String() string {
	return FormatISO(ts)
}
