package domain

import (
	"strconv"
	"strings"
)

// Priority orders tasks by urgency. The zero value is PriorityNone.
type Priority int

const (
	PriorityNone Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "HIGH"
	case PriorityMedium:
		return "MEDIUM"
	case PriorityLow:
		return "LOW"
	default:
		return "NONE"
	}
}

// ParsePriority accepts names, short forms, synonyms and 0-3. Anything
// unrecognised reports ok=false.
func ParsePriority(s string) (Priority, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	switch normalized {
	case "high", "h", "urgent", "important":
		return PriorityHigh, true
	case "medium", "med", "m", "normal":
		return PriorityMedium, true
	case "low", "l", "minor":
		return PriorityLow, true
	case "none", "n", "":
		return PriorityNone, true
	}
	if n, err := strconv.Atoi(normalized); err == nil && n >= 0 && n <= 3 {
		return Priority(n), true
	}
	return PriorityNone, false
}

var priorityKeywords = []struct {
	priority Priority
	words    []string
}{
	{PriorityHigh, []string{"urgent", "asap", "emergency", "critical", "deadline",
		"important", "meeting", "interview", "exam", "presentation"}},
	{PriorityMedium, []string{"soon", "report", "project", "assignment", "call",
		"email", "review", "plan"}},
	{PriorityLow, []string{"someday", "maybe", "consider", "think about",
		"when free", "leisure", "hobby"}},
}

// SuggestPriority guesses a priority from words in the description.
func SuggestPriority(description string) Priority {
	lower := strings.ToLower(description)
	for _, group := range priorityKeywords {
		for _, w := range group.words {
			if strings.Contains(lower, w) {
				return group.priority
			}
		}
	}
	return PriorityNone
}
