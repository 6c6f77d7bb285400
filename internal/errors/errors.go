package errors

import (
	"errors"
	"fmt"
)

// FormatExamples is appended to date/time parse failures so the user sees what is accepted.
const FormatExamples = "Try formats like: 'tomorrow 5pm', '15/12/2024 1700', 'yyyy-mm-dd'"

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewIndexOutOfRangeError reports a display index that does not name a task.
func NewIndexOutOfRangeError(index, count int) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("Task index %d is out of range! You have %d tasks.", index, count),
		Code:    "INDEX_OUT_OF_RANGE",
		Context: map[string]interface{}{
			"index": index,
			"count": count,
		},
	}
}

// NewStorageError wraps a failure from a storage backend.
func NewStorageError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeStorage,
		Message: fmt.Sprintf("storage operation failed: %s", operation),
		Code:    "STORAGE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(operation string, timeout interface{}) *AppError {
	return &AppError{
		Type:    ErrorTypeTimeout,
		Message: fmt.Sprintf("operation timed out: %s", operation),
		Code:    "TIMEOUT",
		Context: map[string]interface{}{
			"operation": operation,
			"timeout":   timeout,
		},
	}
}

// NewEmptyInputError is returned when a date/time expression is blank.
func NewEmptyInputError() *AppError {
	return &AppError{
		Type:    ErrorTypeDateTimeParse,
		Message: "Date/time string cannot be empty!",
		Code:    CodeEmptyInput,
		Context: map[string]interface{}{
			"expected": FormatExamples,
		},
	}
}

// NewUnsupportedFormatError is returned when no parsing strategy accepts the input.
func NewUnsupportedFormatError(input string) *AppError {
	return &AppError{
		Type:    ErrorTypeDateTimeParse,
		Message: fmt.Sprintf("Unable to parse date/time: %s. %s", input, FormatExamples),
		Code:    CodeUnsupportedFormat,
		Context: map[string]interface{}{
			"input":    input,
			"expected": FormatExamples,
		},
	}
}

// NewUnknownWeekdayError is an unsupported-format error that names the weekday it did not recognise.
func NewUnknownWeekdayError(input, weekday string) *AppError {
	return &AppError{
		Type: ErrorTypeDateTimeParse,
		Message: fmt.Sprintf("Unable to parse date/time: %s. Unknown weekday '%s'. %s",
			input, weekday, FormatExamples),
		Code: CodeUnsupportedFormat,
		Context: map[string]interface{}{
			"input":    input,
			"weekday":  weekday,
			"expected": FormatExamples,
		},
	}
}

// NewInvalidNumericError reports a recognised form whose numbers are out of range.
func NewInvalidNumericError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeDateTimeParse,
		Message: fmt.Sprintf("Invalid %s %v: %s", field, value, reason),
		Code:    CodeInvalidNumeric,
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// HasCode reports whether err is an AppError carrying code.
func HasCode(err error, code string) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

// GetUserMessage returns the message shown on the terminal for err.
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
			return appErr.Message
		case ErrorTypeDateTimeParse:
			if appErr.Code == CodeInvalidNumeric {
				return fmt.Sprintf("%s. %s", appErr.Message, FormatExamples)
			}
			return appErr.Message
		case ErrorTypeStorage:
			return "Could not read or write the task store. Please try again."
		case ErrorTypeTimeout:
			return "The operation timed out. Please try again."
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError reports whether err is a system fault rather than a user mistake.
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput, ErrorTypeDateTimeParse:
			return false
		default:
			return true
		}
	}
	return true
}
