package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewValidationError(t *testing.T) {
	cause := errors.New("title is required")
	err := NewValidationError("validation failed", cause)

	if err.Type != ErrorTypeValidation {
		t.Errorf("NewValidationError type = %v, want %v", err.Type, ErrorTypeValidation)
	}
	if err.Code != "VALIDATION_FAILED" {
		t.Errorf("NewValidationError code = %v, want VALIDATION_FAILED", err.Code)
	}
	if err.Cause != cause {
		t.Errorf("NewValidationError cause = %v, want %v", err.Cause, cause)
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("task", "0042")

	if err.Message != "task not found: 0042" {
		t.Errorf("NewNotFoundError message = %v", err.Message)
	}
	if identifier, ok := err.GetContext("identifier"); !ok || identifier != "0042" {
		t.Errorf("NewNotFoundError should set identifier context")
	}
}

func TestNewStorageError(t *testing.T) {
	cause := errors.New("database is locked")
	err := NewStorageError("save board", cause)

	if err.Type != ErrorTypeStorage {
		t.Errorf("NewStorageError type = %v, want %v", err.Type, ErrorTypeStorage)
	}
	if err.Message != "storage operation failed: save board" {
		t.Errorf("NewStorageError message = %v", err.Message)
	}
	if err.Code != "STORAGE_ERROR" {
		t.Errorf("NewStorageError code = %v", err.Code)
	}
}

func TestNewImportError(t *testing.T) {
	err := NewImportError("missing tasks field", nil)

	if err.Type != ErrorTypeImportFailed {
		t.Errorf("NewImportError type = %v", err.Type)
	}
	if err.Message != "import failed: missing tasks field" {
		t.Errorf("NewImportError message = %v", err.Message)
	}
}

func TestNewVoiceUnavailableError(t *testing.T) {
	err := NewVoiceUnavailableError("no transcript source", nil)

	if err.Code != "VOICE_UNAVAILABLE" {
		t.Errorf("NewVoiceUnavailableError code = %v", err.Code)
	}
	if !IsErrorType(err, ErrorTypeVoiceUnavailable) {
		t.Errorf("IsErrorType should match voice_unavailable")
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewNotFoundError("task", "0001"))

	appErr, ok := AsAppError(wrapped)
	if !ok || appErr.Type != ErrorTypeNotFound {
		t.Errorf("AsAppError should unwrap to the not found error")
	}

	if _, ok := AsAppError(errors.New("plain")); ok {
		t.Errorf("AsAppError should fail for a plain error")
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Validation error",
			err:      NewValidationError("title is too long", nil),
			expected: "title is too long",
		},
		{
			name:     "Not found error",
			err:      NewNotFoundError("task", "0009"),
			expected: "task not found: 0009",
		},
		{
			name:     "Storage error",
			err:      NewStorageError("save", errors.New("disk full")),
			expected: "Saving or loading the board failed. Please try again.",
		},
		{
			name:     "Import error with reason",
			err:      NewImportError("invalid JSON", errors.New("unexpected EOF")),
			expected: "import failed: invalid JSON (unexpected EOF)",
		},
		{
			name:     "Permission error",
			err:      NewPermissionError("notify", "reminders"),
			expected: "permission denied for notify on reminders",
		},
		{
			name:     "Timeout error",
			err:      NewTimeoutError("load", "5s"),
			expected: "The operation timed out. Please try again.",
		},
		{
			name:     "Unknown type",
			err:      &AppError{Type: ErrorType("mystery"), Message: "internal detail"},
			expected: "An unexpected error occurred. Please try again.",
		},
		{
			name:     "Regular error",
			err:      errors.New("regular error"),
			expected: "regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetUserMessage(tt.err)
			if result != tt.expected {
				t.Errorf("GetUserMessage() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if GetErrorCode(NewImportError("x", nil)) != "IMPORT_FAILED" {
		t.Errorf("GetErrorCode should return correct code for AppError")
	}
	if GetErrorCode(errors.New("regular error")) != "UNKNOWN_ERROR" {
		t.Errorf("GetErrorCode should return UNKNOWN_ERROR for regular error")
	}
}

func TestShouldLogError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"Validation error", NewValidationError("bad", nil), false},
		{"Not found error", NewNotFoundError("task", "0001"), false},
		{"Import error", NewImportError("missing tasks field", nil), false},
		{"Voice error", NewVoiceUnavailableError("closed", nil), false},
		{"Permission error", NewPermissionError("notify", "reminders"), false},
		{"Storage error", NewStorageError("save", errors.New("locked")), true},
		{"Timeout error", NewTimeoutError("load", "5s"), true},
		{"Regular error", errors.New("regular"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := ShouldLogError(tt.err); result != tt.expected {
				t.Errorf("ShouldLogError() = %v, want %v", result, tt.expected)
			}
		})
	}
}
