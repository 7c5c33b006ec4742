package cli

import (
	"context"
	stderrors "errors"
	"fmt"

	"go.uber.org/zap"

	"focusflow/internal/errors"
	"focusflow/internal/validation"
)

// ErrorHandler turns service errors into the messages a command prints.
// Unexpected failures are also logged with their full detail.
type ErrorHandler struct {
	logger *zap.SugaredLogger
}

// NewErrorHandler creates an error handler. A nil logger discards.
func NewErrorHandler(logger *zap.SugaredLogger) *ErrorHandler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &ErrorHandler{logger: logger}
}

// Handle returns nil for nil, otherwise "failed to <operation>: <message>"
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.AsAppError(err); !ok && stderrors.Is(err, context.DeadlineExceeded) {
		err = errors.NewTimeoutError(operation, err.Error())
	}
	if errors.ShouldLogError(err) {
		eh.logger.Errorw("command failed", "operation", operation, "error", err)
	}

	if validationErr, ok := validation.As(err); ok {
		return fmt.Errorf("failed to %s: %s", operation, validationErr.GetUserFriendlyMessage())
	}
	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("failed to %s: %s", operation, errors.GetUserMessage(err))
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}
