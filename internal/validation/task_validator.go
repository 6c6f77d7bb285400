package validation

import (
	"fmt"

	"task-tracker/internal/config"
	"task-tracker/internal/datetime"
	"task-tracker/internal/domain"
	apperrors "task-tracker/internal/errors"
)

// TaskValidator provides validation for task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator with default limits
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{validator: NewValidator()}
}

// NewTaskValidatorWithConfig creates a task validator using the configured limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateDescription validates a task description for creation
func (tv *TaskValidator) ValidateDescription(description string) error {
	validationError := NewValidationError()

	trimmed := tv.validator.TrimAndValidateString(description)
	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("task_description")
		return validationError
	}

	if !tv.validator.IsValidDescriptionLength(trimmed) {
		validationError.AddInvalidLengthError("task_description", trimmed,
			tv.validator.DescriptionMinLength(), tv.validator.DescriptionMaxLength())
	}

	if !tv.validator.IsValidDescription(trimmed) {
		validationError.AddInvalidCharacterError("task_description", trimmed)
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// GetValidDescription returns a cleaned description if valid
func (tv *TaskValidator) GetValidDescription(description string) (string, error) {
	if err := tv.ValidateDescription(description); err != nil {
		return "", err
	}
	return tv.validator.TrimAndValidateString(description), nil
}

// ValidateDateText checks that a date/time argument was supplied at all.
// Parsing it is left to the datetime package.
func (tv *TaskValidator) ValidateDateText(field, text string) error {
	if !tv.validator.IsNonEmptyString(text) {
		validationError := NewValidationError()
		validationError.AddRequiredError(field)
		return validationError
	}
	return nil
}

// ValidateEventRange rejects events that end before they start
func (tv *TaskValidator) ValidateEventRange(from, to datetime.Timestamp) error {
	if tv.validator.IsValidEventRange(from, to) {
		return nil
	}
	validationError := NewValidationError()
	validationError.AddInvalidRangeError("event_end", to, fmt.Sprintf(
		"Event end time (%s) cannot be before its start time (%s)!",
		datetime.FormatDateTime(to), datetime.FormatDateTime(from)))
	return validationError
}

// ValidateIndex checks a 1-based display index against the task count
func (tv *TaskValidator) ValidateIndex(index, count int) error {
	if !tv.validator.IsValidIndex(index, count) {
		return apperrors.NewIndexOutOfRangeError(index, count)
	}
	return nil
}

// ValidateTask validates a domain.Task before it is stored
func (tv *TaskValidator) ValidateTask(task domain.Task) error {
	validationError := NewValidationError()

	if err := tv.ValidateDescription(task.Description); err != nil {
		if descErr, ok := err.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, descErr.Errors...)
		}
	}

	switch when := task.When.(type) {
	case domain.Deadline:
		tv.checkStorable(validationError, "deadline", when.By)
	case domain.Event:
		tv.checkStorable(validationError, "event_start", when.From)
		tv.checkStorable(validationError, "event_end", when.To)
	}

	if ev, ok := task.When.(domain.Event); ok {
		if err := tv.ValidateEventRange(ev.From, ev.To); err != nil {
			if rangeErr, ok := err.(*ValidationError); ok {
				validationError.Errors = append(validationError.Errors, rangeErr.Errors...)
			}
		}
	}

	if task.ID < 0 {
		validationError.AddInvalidValueError("task_id", task.ID, "must be a positive integer")
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

func (tv *TaskValidator) checkStorable(ve *ValidationError, field string, ts datetime.Timestamp) {
	if !tv.validator.IsStorableTimestamp(ts) {
		ve.AddInvalidFormatError(field, ts.Date().Year, "a date between years 1 and 9999")
	}
}
