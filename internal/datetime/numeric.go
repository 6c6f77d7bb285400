package datetime

import (
	"regexp"
	"strconv"
	"time"
)

var (
	isoDatePattern       = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	slashDateTimePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4}) (\d{4})$`)
	slashDatePattern     = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

func resolveISODate(in expr, _ Timestamp) (Timestamp, bool, error) {
	m := isoDatePattern.FindStringSubmatch(in.raw)
	if m == nil {
		return Timestamp{}, false, nil
	}
	ts, err := NewTimestamp(atoi(m[1]), time.Month(atoi(m[2])), atoi(m[3]), 0, 0)
	return ts, true, err
}

func resolveSlashDateTime(in expr, _ Timestamp) (Timestamp, bool, error) {
	m := slashDateTimePattern.FindStringSubmatch(in.raw)
	if m == nil {
		return Timestamp{}, false, nil
	}
	hhmm := atoi(m[4])
	ts, err := NewTimestamp(atoi(m[3]), time.Month(atoi(m[2])), atoi(m[1]), hhmm/100, hhmm%100)
	return ts, true, err
}

func resolveSlashDate(in expr, _ Timestamp) (Timestamp, bool, error) {
	m := slashDatePattern.FindStringSubmatch(in.raw)
	if m == nil {
		return Timestamp{}, false, nil
	}
	ts, err := NewTimestamp(atoi(m[3]), time.Month(atoi(m[2])), atoi(m[1]), 0, 0)
	return ts, true, err
}

func resolveBareTime(in expr, now Timestamp) (Timestamp, bool, error) {
	if !hhmmPattern.MatchString(in.raw) {
		return Timestamp{}, false, nil
	}
	hhmm := atoi(in.raw)
	t, err := NewTimeOfDay(hhmm/100, hhmm%100)
	if err != nil {
		return Timestamp{}, true, err
	}
	return now.WithTimeOfDay(t), true, nil
}

// atoi is only called on strings the patterns above restrict to digits.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
