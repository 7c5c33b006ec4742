package validation

import (
	stderrors "errors"
	"fmt"
	"strings"

	apperrors "focusflow/internal/errors"
)

// ValidationErrorType names what is wrong with a field
type ValidationErrorType string

const (
	ErrorTypeRequired      ValidationErrorType = "required"
	ErrorTypeInvalidFormat ValidationErrorType = "invalid_format"
	ErrorTypeInvalidLength ValidationErrorType = "invalid_length"
	ErrorTypeInvalidValue  ValidationErrorType = "invalid_value"
)

// FieldError is one problem with one field of a task payload
type FieldError struct {
	Field   string
	Type    ValidationErrorType
	Message string
	Value   interface{}
}

func (fe FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", fe.Field, fe.Message)
}

// ValidationError collects every field problem found in one payload, in
// the order the checks ran.
type ValidationError struct {
	Errors []FieldError
}

// NewValidationError creates an empty ValidationError
func NewValidationError() *ValidationError {
	return &ValidationError{Errors: make([]FieldError, 0)}
}

// As finds a ValidationError anywhere in err's chain
func As(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stderrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func (ve *ValidationError) Error() string {
	switch len(ve.Errors) {
	case 0:
		return "validation error"
	case 1:
		return ve.Errors[0].Error()
	}
	parts := make([]string, len(ve.Errors))
	for i, fe := range ve.Errors {
		parts[i] = fe.Error()
	}
	return fmt.Sprintf("%d validation errors: %s", len(ve.Errors), strings.Join(parts, "; "))
}

// HasErrors reports whether any check failed
func (ve *ValidationError) HasErrors() bool {
	return len(ve.Errors) > 0
}

// Has reports whether field failed at least one check
func (ve *ValidationError) Has(field string) bool {
	for _, fe := range ve.Errors {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Fields lists the failing fields once each, first failure first
func (ve *ValidationError) Fields() []string {
	seen := make(map[string]bool, len(ve.Errors))
	fields := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		if !seen[fe.Field] {
			seen[fe.Field] = true
			fields = append(fields, fe.Field)
		}
	}
	return fields
}

func (ve *ValidationError) add(field string, t ValidationErrorType, message string, value interface{}) {
	ve.Errors = append(ve.Errors, FieldError{Field: field, Type: t, Message: message, Value: value})
}

// AddRequiredError records a missing or blank field
func (ve *ValidationError) AddRequiredError(field string) {
	ve.add(field, ErrorTypeRequired, "must not be empty", nil)
}

// AddInvalidFormatError records a value that does not look like expected
func (ve *ValidationError) AddInvalidFormatError(field string, value interface{}, expected string) {
	ve.add(field, ErrorTypeInvalidFormat, "expected "+expected, value)
}

// AddInvalidLengthError records a value longer than max characters
func (ve *ValidationError) AddInvalidLengthError(field string, value interface{}, max int) {
	ve.add(field, ErrorTypeInvalidLength, fmt.Sprintf("must be at most %d characters long", max), value)
}

// AddInvalidValueError records a well-formed value that is not allowed
func (ve *ValidationError) AddInvalidValueError(field string, value interface{}, reason string) {
	ve.add(field, ErrorTypeInvalidValue, reason, value)
}

// GetUserFriendlyMessage renders the problems for the terminal, one per
// line when there are several.
func (ve *ValidationError) GetUserFriendlyMessage() string {
	switch len(ve.Errors) {
	case 0:
		return "Input validation failed"
	case 1:
		return ve.Errors[0].Error()
	}
	var b strings.Builder
	b.WriteString("Multiple validation errors occurred:")
	for _, fe := range ve.Errors {
		b.WriteString("\n- ")
		b.WriteString(fe.Error())
	}
	return b.String()
}

// ToAppError wraps the problems as a validation AppError carrying the
// failing field names.
func (ve *ValidationError) ToAppError() *apperrors.AppError {
	return apperrors.NewValidationError(ve.GetUserFriendlyMessage(), ve).
		WithContext("fields", ve.Fields())
}
