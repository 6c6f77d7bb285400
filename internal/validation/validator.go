package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"task-tracker/internal/config"
	"task-tracker/internal/datetime"
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{config: nil}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string's rune count is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidDescriptionLength checks a description against the configured limits
func (v *Validator) IsValidDescriptionLength(description string) bool {
	return v.IsValidStringLength(description, v.DescriptionMinLength(), v.DescriptionMaxLength())
}

// IsValidDescription rejects control characters and the '|' field separator
// of the text store. Everything else, including non-ASCII text, is allowed.
func (v *Validator) IsValidDescription(description string) bool {
	for _, r := range description {
		if r == '|' || unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// IsValidIndex checks a 1-based display index against the number of tasks
func (v *Validator) IsValidIndex(index, count int) bool {
	return index >= 1 && index <= count
}

// IsValidEventRange checks that an event does not end before it starts
func (v *Validator) IsValidEventRange(from, to datetime.Timestamp) bool {
	return !to.Before(from)
}

// IsStorableTimestamp reports whether ts survives a round trip through the
// persisted ISO form. Far-off dates past year 9999 do not.
func (v *Validator) IsStorableTimestamp(ts datetime.Timestamp) bool {
	back, err := datetime.ParseISO(datetime.FormatISO(ts))
	return err == nil && back.Equal(ts)
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// DescriptionMinLength returns the configured minimum description length or default
func (v *Validator) DescriptionMinLength() int {
	if v.config != nil {
		return v.config.Validation.DescriptionMinLength
	}
	return 1
}

// DescriptionMaxLength returns the configured maximum description length or default
func (v *Validator) DescriptionMaxLength() int {
	if v.config != nil {
		return v.config.Validation.DescriptionMaxLength
	}
	return 255
}
