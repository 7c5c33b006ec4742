package sqlite

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "focusflow/internal/errors"
)

func TestHandleStorageError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected apperrors.ErrorType
	}{
		{"plain failure", errors.New("disk I/O error"), apperrors.ErrorTypeStorage},
		{"deadline", context.DeadlineExceeded, apperrors.ErrorTypeTimeout},
		{"wrapped deadline", fmt.Errorf("exec: %w", context.DeadlineExceeded), apperrors.ErrorTypeTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := HandleStorageError("save", tt.err)
			assert.True(t, apperrors.IsErrorType(err, tt.expected))
		})
	}
}
