// Package datetime holds the calendar types used for task scheduling and
// the natural-language parser that produces them.
package datetime

import (
	"fmt"
	"time"

	apperrors "task-tracker/internal/errors"
)

// Date is a calendar date without a time of day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate validates the components and returns the date.
func NewDate(year int, month time.Month, day int) (Date, error) {
	if year < 1 || year > 9999 {
		return Date{}, apperrors.NewInvalidNumericError("year", year, "must be between 1 and 9999")
	}
	if month < time.January || month > time.December {
		return Date{}, apperrors.NewInvalidNumericError("month", int(month), "must be between 1 and 12")
	}
	if last := daysIn(year, month); day < 1 || day > last {
		return Date{}, apperrors.NewInvalidNumericError("day", day,
			fmt.Sprintf("must be between 1 and %d for %s %d", last, month, year))
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (d Date) utc() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays shifts the date by n days; n may be negative.
func (d Date) AddDays(n int) Date {
	return DateOf(d.utc().AddDate(0, 0, n))
}

// AddMonths shifts the date by n months. A day past the end of the target
// month is clamped to its last day, so Jan 31 + 1 month is Feb 28 or 29.
func (d Date) AddMonths(n int) Date {
	first := time.Date(d.Year, d.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	day := d.Day
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return Date{Year: first.Year(), Month: first.Month(), Day: day}
}

// ISOWeekday numbers the weekday Monday=1 through Sunday=7.
func (d Date) ISOWeekday() int {
	wd := int(d.utc().Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// Compare returns -1, 0 or +1 as d is before, equal to or after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(int(d.Month) - int(other.Month))
	default:
		return sign(d.Day - other.Day)
	}
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }
func (d Date) Equal(other Date) bool  { return d == other }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// At combines the date with a time of day.
func (d Date) At(t TimeOfDay) Timestamp {
	return Timestamp{date: d, clock: t}
}

// StartOfDay is the date at 00:00.
func (d Date) StartOfDay() Timestamp {
	return d.At(Midnight)
}

// String renders the date as yyyy-MM-dd.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// TimeOfDay is an hour and minute on a 24-hour clock.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// Midnight is 00:00, the time all-day tasks carry.
var Midnight = TimeOfDay{}

// NewTimeOfDay validates hour 0-23 and minute 0-59.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 {
		return TimeOfDay{}, apperrors.NewInvalidNumericError("hour", hour, "must be between 0 and 23")
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, apperrors.NewInvalidNumericError("minute", minute, "must be between 0 and 59")
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

func (t TimeOfDay) IsMidnight() bool { return t == Midnight }

// Minutes is the number of minutes since midnight.
func (t TimeOfDay) Minutes() int { return t.Hour*60 + t.Minute }

// String renders HH:mm.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
