package errors

import (
	"errors"
	"fmt"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return newAppError(ErrorTypeValidation, message, cause, nil)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return newAppError(ErrorTypeNotFound, fmt.Sprintf("%s not found: %s", resource, identifier), nil,
		map[string]interface{}{"resource": resource, "identifier": identifier})
}

// NewStorageError creates a new storage error for a failed load or save
func NewStorageError(operation string, cause error) *AppError {
	return newAppError(ErrorTypeStorage, fmt.Sprintf("storage operation failed: %s", operation), cause,
		map[string]interface{}{"operation": operation})
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return newAppError(ErrorTypeInvalidInput, fmt.Sprintf("invalid input for %s: %s", field, reason), nil,
		map[string]interface{}{"field": field, "value": value, "reason": reason})
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(operation string, timeout interface{}) *AppError {
	return newAppError(ErrorTypeTimeout, fmt.Sprintf("operation timed out: %s", operation), nil,
		map[string]interface{}{"operation": operation, "timeout": timeout})
}

// NewPermissionError creates a new permission error
func NewPermissionError(operation string, resource string) *AppError {
	return newAppError(ErrorTypePermission, fmt.Sprintf("permission denied for %s on %s", operation, resource), nil,
		map[string]interface{}{"operation": operation, "resource": resource})
}

// NewImportError reports a rejected backup. The reason is shown to the user as is.
func NewImportError(reason string, cause error) *AppError {
	return newAppError(ErrorTypeImportFailed, fmt.Sprintf("import failed: %s", reason), cause,
		map[string]interface{}{"reason": reason})
}

// NewVoiceUnavailableError reports that no transcript source can be used.
func NewVoiceUnavailableError(reason string, cause error) *AppError {
	return newAppError(ErrorTypeVoiceUnavailable, fmt.Sprintf("voice input unavailable: %s", reason), cause,
		map[string]interface{}{"reason": reason})
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

// GetUserMessage returns the message shown to the user. Infrastructure
// failures get a generic text; import failures carry their cause.
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}

	info, known := types[appErr.Type]
	switch {
	case !known:
		return "An unexpected error occurred. Please try again."
	case info.userMessage != "":
		return info.userMessage
	case appErr.Type == ErrorTypeImportFailed && appErr.Cause != nil:
		return fmt.Sprintf("%s (%v)", appErr.Message, appErr.Cause)
	}
	return appErr.Message
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ErrorType("").Code()
}

// ShouldLogError reports whether err is worth logging. Expected user-facing
// conditions such as validation failures are not.
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return !types[appErr.Type].userFacing
	}
	return true
}
