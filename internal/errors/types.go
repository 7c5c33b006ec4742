package errors

import (
	"fmt"
	"sort"

	"go.uber.org/zap/zapcore"
)

// ErrorType represents the category of error
type ErrorType string

const (
	ErrorTypeValidation       ErrorType = "validation"
	ErrorTypeNotFound         ErrorType = "not_found"
	ErrorTypeStorage          ErrorType = "storage"
	ErrorTypeInvalidInput     ErrorType = "invalid_input"
	ErrorTypeTimeout          ErrorType = "timeout"
	ErrorTypePermission       ErrorType = "permission"
	ErrorTypeImportFailed     ErrorType = "import_failed"
	ErrorTypeVoiceUnavailable ErrorType = "voice_unavailable"
)

// typeInfo describes how an error category is coded and surfaced.
// userMessage replaces the internal message when set; userFacing errors
// are expected conditions that are shown but not logged.
type typeInfo struct {
	code        string
	userMessage string
	userFacing  bool
}

var types = map[ErrorType]typeInfo{
	ErrorTypeValidation:       {code: "VALIDATION_FAILED", userFacing: true},
	ErrorTypeNotFound:         {code: "NOT_FOUND", userFacing: true},
	ErrorTypeStorage:          {code: "STORAGE_ERROR", userMessage: "Saving or loading the board failed. Please try again."},
	ErrorTypeInvalidInput:     {code: "INVALID_INPUT", userFacing: true},
	ErrorTypeTimeout:          {code: "TIMEOUT", userMessage: "The operation timed out. Please try again."},
	ErrorTypePermission:       {code: "PERMISSION_DENIED", userFacing: true},
	ErrorTypeImportFailed:     {code: "IMPORT_FAILED", userFacing: true},
	ErrorTypeVoiceUnavailable: {code: "VOICE_UNAVAILABLE", userFacing: true},
}

// String returns the name of a known type and "unknown" otherwise
func (et ErrorType) String() string {
	if _, ok := types[et]; ok {
		return string(et)
	}
	return "unknown"
}

// Code returns the stable machine-readable code of the type
func (et ErrorType) Code() string {
	if info, ok := types[et]; ok {
		return info.code
	}
	return "UNKNOWN_ERROR"
}

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]interface{}
}

func newAppError(t ErrorType, message string, cause error, context map[string]interface{}) *AppError {
	if context == nil {
		context = make(map[string]interface{})
	}
	return &AppError{Type: t, Message: message, Code: t.Code(), Cause: cause, Context: context}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError of the same type and code.
func (e *AppError) Is(target error) bool {
	if appErr, ok := target.(*AppError); ok {
		return e.Type == appErr.Type && e.Code == appErr.Code
	}
	return false
}

// IsType checks if this error is of the specified type
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithContext adds context information to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// GetContext retrieves context information from the error
func (e *AppError) GetContext(key string) (interface{}, bool) {
	value, exists := e.Context[key]
	return value, exists
}

// MarshalLogObject lets zap log the error as structured fields:
// type, code, message, cause and the context keys in sorted order.
func (e *AppError) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("type", e.Type.String())
	enc.AddString("code", e.Code)
	enc.AddString("message", e.Message)
	if e.Cause != nil {
		enc.AddString("cause", e.Cause.Error())
	}

	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := enc.AddReflected(k, e.Context[k]); err != nil {
			return err
		}
	}
	return nil
}
