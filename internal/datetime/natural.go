package datetime

import (
	"regexp"
	"strconv"
	"strings"

	apperrors "task-tracker/internal/errors"
)

var keywords = map[string]func(Date) Date{
	"today":      func(d Date) Date { return d },
	"tomorrow":   func(d Date) Date { return d.AddDays(1) },
	"yesterday":  func(d Date) Date { return d.AddDays(-1) },
	"next week":  func(d Date) Date { return d.AddDays(7) },
	"next month": func(d Date) Date { return d.AddMonths(1) },
}

var weekdays = map[string]int{
	"monday": 1, "mon": 1,
	"tuesday": 2, "tue": 2,
	"wednesday": 3, "wed": 3,
	"thursday": 4, "thu": 4,
	"friday": 5, "fri": 5,
	"saturday": 6, "sat": 6,
	"sunday": 7, "sun": 7,
}

var (
	relativePattern  = regexp.MustCompile(`^in (\d+) (day|days|week|weeks|month|months)$`)
	weekdayPattern   = regexp.MustCompile(`^(next|this) ([a-z]+)$`)
	clockTimePattern = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?(am|pm)$`)
	hhmmPattern      = regexp.MustCompile(`^\d{3,4}$`)
)

func resolveKeyword(in expr, now Timestamp) (Timestamp, bool, error) {
	shift, ok := keywords[in.lower]
	if !ok {
		return Timestamp{}, false, nil
	}
	return startOf(shift(now.Date()))
}

// startOf returns midnight of a shifted date, rejecting dates outside the
// years a stored timestamp can hold.
func startOf(d Date) (Timestamp, bool, error) {
	if _, err := NewDate(d.Year, d.Month, d.Day); err != nil {
		return Timestamp{}, true, err
	}
	return d.StartOfDay(), true, nil
}

func resolveRelative(in expr, now Timestamp) (Timestamp, bool, error) {
	m := relativePattern.FindStringSubmatch(in.lower)
	if m == nil {
		return Timestamp{}, false, nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n > 100000 {
		return Timestamp{}, true, apperrors.NewInvalidNumericError("offset", m[1], "is too large")
	}

	today := now.Date()
	var d Date
	switch strings.TrimSuffix(m[2], "s") {
	case "day":
		d = today.AddDays(n)
	case "week":
		d = today.AddDays(7 * n)
	default:
		d = today.AddMonths(n)
	}
	return startOf(d)
}

// resolveWeekday handles "next <day>" and "this <day>". "next" always moves
// into the following week; "this" picks the day later in the current week
// and rolls over when that day is today or already past.
func resolveWeekday(in expr, now Timestamp) (Timestamp, bool, error) {
	m := weekdayPattern.FindStringSubmatch(in.lower)
	if m == nil {
		return Timestamp{}, false, nil
	}
	target, ok := weekdays[m[2]]
	if !ok {
		return Timestamp{}, false, apperrors.NewUnknownWeekdayError(in.raw, m[2])
	}

	today := now.Date()
	current := today.ISOWeekday()
	days := target - current
	if m[1] == "next" || target <= current {
		days = 7 - current + target
	}
	return startOf(today.AddDays(days))
}

// resolveCompound splits "<date> <time>" at the last space. The date part
// must be a keyword, relative offset or weekday expression.
func resolveCompound(in expr, now Timestamp) (Timestamp, bool, error) {
	i := strings.LastIndexByte(in.lower, ' ')
	if i < 0 {
		return Timestamp{}, false, nil
	}
	datePart := expr{raw: in.raw, lower: in.lower[:i]}
	timePart := in.lower[i+1:]

	base, matched, err := resolveDateExpr(datePart, now)
	if !matched {
		return Timestamp{}, false, err
	}
	t, matched, err := parseTimeOfDay(timePart)
	if !matched {
		return Timestamp{}, false, nil
	}
	if err != nil {
		return Timestamp{}, true, err
	}
	return base.WithTimeOfDay(t), true, nil
}

func resolveDateExpr(in expr, now Timestamp) (Timestamp, bool, error) {
	var hint error
	for _, resolve := range []func(expr, Timestamp) (Timestamp, bool, error){
		resolveKeyword, resolveRelative, resolveWeekday,
	} {
		ts, matched, err := resolve(in, now)
		if matched {
			return ts, true, err
		}
		if err != nil {
			hint = err
		}
	}
	return Timestamp{}, false, hint
}

func resolveBareClockTime(in expr, now Timestamp) (Timestamp, bool, error) {
	if !clockTimePattern.MatchString(in.lower) {
		return Timestamp{}, false, nil
	}
	t, _, err := parseTimeOfDay(in.lower)
	if err != nil {
		return Timestamp{}, true, err
	}
	return now.WithTimeOfDay(t), true, nil
}

// parseTimeOfDay accepts "3pm", "3:30pm", "12am" and 24-hour "930" or "1800".
func parseTimeOfDay(s string) (TimeOfDay, bool, error) {
	if m := clockTimePattern.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if hour < 1 || hour > 12 {
			return TimeOfDay{}, true, apperrors.NewInvalidNumericError("hour", hour, "must be between 1 and 12 for am/pm times")
		}
		switch {
		case m[3] == "pm" && hour != 12:
			hour += 12
		case m[3] == "am" && hour == 12:
			hour = 0
		}
		t, err := NewTimeOfDay(hour, minute)
		return t, true, err
	}
	if hhmmPattern.MatchString(s) {
		n, _ := strconv.Atoi(s)
		t, err := NewTimeOfDay(n/100, n%100)
		return t, true, err
	}
	return TimeOfDay{}, false, nil
}
