package sqlite

import (
	"context"
	"database/sql"
	"errors"

	apperrors "focusflow/internal/errors"
)

// HandleStorageError converts database errors to structured app errors
func HandleStorageError(operation string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewTimeoutError(operation, err.Error())
	}
	return apperrors.NewStorageError(operation, err)
}

// QuerySingle executes a query that returns a single row and scans it.
// A missing row yields nil, nil.
func QuerySingle[T any](ctx context.Context, db *sql.DB, query string, scanFunc func(Scanner) (*T, error), operation string, args ...interface{}) (*T, error) {
	row := db.QueryRowContext(ctx, query, args...)
	result, err := scanFunc(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, HandleStorageError(operation, err)
	}
	return result, nil
}

// Execute runs a statement and wraps any failure
func Execute(ctx context.Context, db *sql.DB, query string, operation string, args ...interface{}) error {
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return HandleStorageError(operation, err)
	}
	return nil
}
