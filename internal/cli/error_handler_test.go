package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	apperrors "focusflow/internal/errors"
	"focusflow/internal/validation"
)

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler(nil)

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "Validation error",
			operation: "add task",
			err:       apperrors.NewValidationError("invalid input", nil),
			expected:  "failed to add task: invalid input",
		},
		{
			name:      "Not found error",
			operation: "show task",
			err:       apperrors.NewNotFoundError("task", "0042"),
			expected:  "failed to show task: task not found: 0042",
		},
		{
			name:      "Storage error",
			operation: "save board",
			err:       apperrors.NewStorageError("save board", errors.New("disk full")),
			expected:  "failed to save board: Saving or loading the board failed. Please try again.",
		},
		{
			name:      "Permission error",
			operation: "enable reminders",
			err:       apperrors.NewPermissionError("enable reminders", "notifications"),
			expected:  "failed to enable reminders: " + apperrors.NewPermissionError("enable reminders", "notifications").Message,
		},
		{
			name:      "Field validation error",
			operation: "edit task",
			err: &validation.ValidationError{
				Errors: []validation.FieldError{{Field: "title", Message: "must not be empty"}},
			},
			expected: "failed to edit task: invalid title: must not be empty",
		},
		{
			name:      "Wrapped validation error",
			operation: "add task",
			err: fmt.Errorf("create: %w", &validation.ValidationError{
				Errors: []validation.FieldError{{Field: "title", Message: "too long"}},
			}),
			expected: "failed to add task: invalid title: too long",
		},
		{
			name:      "Deadline exceeded",
			operation: "list tasks",
			err:       fmt.Errorf("query: %w", context.DeadlineExceeded),
			expected:  "failed to list tasks: The operation timed out. Please try again.",
		},
		{
			name:      "Regular error",
			operation: "process",
			err:       errors.New("regular error"),
			expected:  "failed to process: regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.Handle(tt.operation, tt.err)
			if result.Error() != tt.expected {
				t.Errorf("ErrorHandler.Handle() = %v, want %v", result.Error(), tt.expected)
			}
		})
	}
}

func TestErrorHandler_HandleNil(t *testing.T) {
	eh := NewErrorHandler(nil)

	if err := eh.Handle("anything", nil); err != nil {
		t.Errorf("ErrorHandler.Handle(nil) = %v, want nil", err)
	}
}

func TestErrorHandler_Logging(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		logged bool
	}{
		{"Storage error", apperrors.NewStorageError("save board", errors.New("disk full")), true},
		{"Timeout", context.DeadlineExceeded, true},
		{"Regular error", errors.New("regular error"), true},
		{"Validation error", apperrors.NewValidationError("bad title", nil), false},
		{"Not found error", apperrors.NewNotFoundError("task", "0042"), false},
		{"Import error", apperrors.NewImportError("invalid JSON", nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			eh := NewErrorHandler(zap.New(core).Sugar())

			_ = eh.Handle("save board", tt.err)

			if got := logs.Len() == 1; got != tt.logged {
				t.Fatalf("logged = %v, want %v", got, tt.logged)
			}
			if tt.logged {
				entry := logs.All()[0]
				if entry.Message != "command failed" {
					t.Errorf("message = %q", entry.Message)
				}
				if entry.ContextMap()["operation"] != "save board" {
					t.Errorf("operation field = %v", entry.ContextMap()["operation"])
				}
			}
		})
	}
}
