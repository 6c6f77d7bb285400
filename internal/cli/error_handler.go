package cli

import (
	stderrors "errors"
	"fmt"

	"task-tracker/internal/errors"
	"task-tracker/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// userError shows msg to the user and keeps err for classification.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

// Handle provides user-friendly error messages prefixed with the operation
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if msg, ok := userMessage(err); ok {
		return &userError{msg: fmt.Sprintf("failed to %s: %s", operation, msg), err: err}
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if msg, ok := userMessage(err); ok {
		return &userError{msg: msg, err: err}
	}
	return err
}

func userMessage(err error) (string, bool) {
	var ve *validation.ValidationError
	if stderrors.As(err, &ve) {
		return ve.GetUserFriendlyMessage(), true
	}
	if _, ok := errors.AsAppError(err); ok {
		return errors.GetUserMessage(err), true
	}
	return "", false
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsStorageError checks if an error came from the task store
func (eh *ErrorHandler) IsStorageError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeStorage)
}

// IsParseError checks if an error came from reading a date or time
func (eh *ErrorHandler) IsParseError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeDateTimeParse)
}

// Hint suggests a next step for the kinds of failure a user can act on.
func (eh *ErrorHandler) Hint(err error) string {
	switch {
	case eh.IsParseError(err):
		return "Type 'tips' for more date examples."
	case eh.IsNotFoundError(err):
		return "Type 'list' to see task numbers."
	case eh.IsStorageError(err):
		return "Check that the data directory exists and is writable."
	}
	return ""
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}
