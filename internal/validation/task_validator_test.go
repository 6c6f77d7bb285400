package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker/internal/config"
	"task-tracker/internal/datetime"
	"task-tracker/internal/domain"
	apperrors "task-tracker/internal/errors"
)

func mustTimestamp(t *testing.T, y, m, d, h, mi int) datetime.Timestamp {
	t.Helper()
	ts, err := datetime.NewTimestamp(y, time.Month(m), d, h, mi)
	require.NoError(t, err)
	return ts
}

func TestTaskValidator_ValidateDescription(t *testing.T) {
	tv := NewTaskValidator()

	tests := []struct {
		name      string
		input     string
		wantTypes []ValidationErrorType
	}{
		{"Valid", "read book", nil},
		{"Surrounding spaces", "  read book  ", nil},
		{"Empty", "", []ValidationErrorType{ErrorTypeRequired}},
		{"Whitespace only", "   ", []ValidationErrorType{ErrorTypeRequired}},
		{"Too long", strings.Repeat("a", 256), []ValidationErrorType{ErrorTypeInvalidLength}},
		{"Separator", "a | b", []ValidationErrorType{ErrorTypeInvalidCharacter}},
		{"Too long and separator", strings.Repeat("|", 300), []ValidationErrorType{ErrorTypeInvalidLength, ErrorTypeInvalidCharacter}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tv.ValidateDescription(tt.input)
			if tt.wantTypes == nil {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			var got []ValidationErrorType
			for _, fe := range ve.Errors {
				got = append(got, fe.Type)
			}
			assert.Equal(t, tt.wantTypes, got)
		})
	}
}

func TestTaskValidator_ConfiguredLimits(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Validation.DescriptionMaxLength = 4
	tv := NewTaskValidatorWithConfig(cfg)

	assert.NoError(t, tv.ValidateDescription("four"))
	err := tv.ValidateDescription("fives")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 1 and 4")
}

func TestTaskValidator_GetValidDescription(t *testing.T) {
	tv := NewTaskValidator()

	got, err := tv.GetValidDescription("  return book ")
	require.NoError(t, err)
	assert.Equal(t, "return book", got)

	_, err = tv.GetValidDescription(" ")
	assert.Error(t, err)
}

func TestTaskValidator_ValidateDateText(t *testing.T) {
	tv := NewTaskValidator()

	assert.NoError(t, tv.ValidateDateText("deadline", "tomorrow"))
	err := tv.ValidateDateText("deadline", "  ")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Deadline cannot be empty!", ve.GetUserFriendlyMessage())
}

func TestTaskValidator_ValidateEventRange(t *testing.T) {
	tv := NewTaskValidator()
	from := mustTimestamp(t, 2024, 12, 20, 14, 0)
	to := mustTimestamp(t, 2024, 12, 20, 16, 0)

	assert.NoError(t, tv.ValidateEventRange(from, to))
	assert.NoError(t, tv.ValidateEventRange(from, from))

	err := tv.ValidateEventRange(to, from)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Event end time (Dec 20 2024, 14:00) cannot be before its start time (Dec 20 2024, 16:00)!",
		ve.GetUserFriendlyMessage())
}

func TestTaskValidator_ValidateIndex(t *testing.T) {
	tv := NewTaskValidator()

	assert.NoError(t, tv.ValidateIndex(2, 3))

	err := tv.ValidateIndex(5, 3)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
	assert.Equal(t, "Task index 5 is out of range! You have 3 tasks.", apperrors.GetUserMessage(err))
}

func TestTaskValidator_ValidateTask(t *testing.T) {
	tv := NewTaskValidator()
	from := mustTimestamp(t, 2024, 12, 20, 14, 0)
	to := mustTimestamp(t, 2024, 12, 20, 16, 0)
	farFuture := datetime.Date{Year: 10358, Month: time.April, Day: 18}.StartOfDay()

	tests := []struct {
		name       string
		task       domain.Task
		wantFields []string
	}{
		{"Todo", domain.NewTask("read book", nil), nil},
		{"Event", domain.NewTask("meeting", domain.Event{From: from, To: to}), nil},
		{"Reversed event", domain.NewTask("meeting", domain.Event{From: to, To: from}), []string{"event_end"}},
		{"Empty description and reversed", domain.Task{When: domain.Event{From: to, To: from}}, []string{"task_description", "event_end"}},
		{"Negative ID", domain.Task{ID: -1, Description: "x", When: domain.Todo{}}, []string{"task_id"}},
		{"Deadline past year 9999", domain.NewTask("return book", domain.Deadline{By: farFuture}), []string{"deadline"}},
		{"Event ending past year 9999", domain.NewTask("trip", domain.Event{From: from, To: farFuture}), []string{"event_end"}},
		{"Event past year 9999", domain.NewTask("trip", domain.Event{From: farFuture, To: farFuture}), []string{"event_start", "event_end"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tv.ValidateTask(tt.task)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			var got []string
			for _, fe := range ve.Errors {
				got = append(got, fe.Field)
			}
			assert.Equal(t, tt.wantFields, got)
		})
	}
}

func TestTaskValidator_FarFutureMessage(t *testing.T) {
	tv := NewTaskValidator()
	farFuture := datetime.Date{Year: 10358, Month: time.April, Day: 18}.StartOfDay()

	err := tv.ValidateTask(domain.NewTask("return book", domain.Deadline{By: farFuture}))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, ErrorTypeInvalidFormat, ve.Errors[0].Type)
	assert.Equal(t, "Deadline must be a date between years 1 and 9999!", ve.GetUserFriendlyMessage())
}
