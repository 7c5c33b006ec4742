package validation

import (
	"fmt"
	"time"

	"focusflow/internal/domain"
)

// TaskValidator provides validation for task payloads
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a task validator with default limits
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{validator: NewValidator()}
}

// NewTaskValidatorWith creates a task validator around v
func NewTaskValidatorWith(v *Validator) *TaskValidator {
	return &TaskValidator{validator: v}
}

// ValidateNewTask validates a create payload. Zero values are accepted
// because the repository fills them with defaults. Color and dependencies
// are free-form.
func (tv *TaskValidator) ValidateNewTask(in domain.NewTask) error {
	ve := NewValidationError()

	tv.checkTitle(ve, in.Title)
	tv.checkTags(ve, in.Tags)
	tv.checkEstimate(ve, in.Estimate)
	if in.Priority != "" && !in.Priority.IsValid() {
		ve.AddInvalidValueError("priority", in.Priority, "must be one of P0, P1, P2, P3")
	}
	if in.Status != "" && !in.Status.IsValid() {
		ve.AddInvalidValueError("status", in.Status, "must be one of todo, doing, done, blocked")
	}
	if !in.Repeat.IsValid() {
		ve.AddInvalidValueError("repeat", in.Repeat, "must be daily, weekly, monthly or empty")
	}
	tv.checkDue(ve, in.Due)

	if ve.HasErrors() {
		return ve
	}
	return nil
}

// ValidatePatch validates an edit. A title that is present must not be blank.
func (tv *TaskValidator) ValidatePatch(p domain.TaskPatch) error {
	ve := NewValidationError()

	if p.Title != nil {
		if !tv.validator.IsNonEmptyString(*p.Title) {
			ve.AddRequiredError("title")
		} else {
			tv.checkTitle(ve, *p.Title)
		}
	}
	if p.List != nil && !tv.validator.IsNonEmptyString(*p.List) {
		ve.AddRequiredError("list")
	}
	if p.Tags != nil {
		tv.checkTags(ve, *p.Tags)
	}
	if !p.ClearEstimate {
		tv.checkEstimate(ve, p.Estimate)
	}
	if p.Priority != nil && !p.Priority.IsValid() {
		ve.AddInvalidValueError("priority", *p.Priority, "must be one of P0, P1, P2, P3")
	}
	if p.Status != nil && !p.Status.IsValid() {
		ve.AddInvalidValueError("status", *p.Status, "must be one of todo, doing, done, blocked")
	}
	if p.Repeat != nil && !p.Repeat.IsValid() {
		ve.AddInvalidValueError("repeat", *p.Repeat, "must be daily, weekly, monthly or empty")
	}
	if !p.ClearDue {
		tv.checkDue(ve, p.Due)
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}

// ValidateTaskID validates a task id
func (tv *TaskValidator) ValidateTaskID(id string) error {
	if !tv.validator.IsValidTaskID(id) {
		ve := NewValidationError()
		ve.AddRequiredError("id")
		return ve
	}
	return nil
}

func (tv *TaskValidator) checkTitle(ve *ValidationError, title string) {
	if !tv.validator.IsValidTitleLength(title) {
		ve.AddInvalidLengthError("title", title, tv.validator.TitleMaxLength())
	}
}

func (tv *TaskValidator) checkTags(ve *ValidationError, tags []string) {
	for _, tag := range tags {
		if !tv.validator.IsValidTag(tag) {
			ve.AddInvalidValueError("tags", tag, fmt.Sprintf(
				"must be 1 to %d characters long", tv.validator.TagMaxLength()))
		}
	}
}

func (tv *TaskValidator) checkEstimate(ve *ValidationError, estimate *float64) {
	if estimate != nil && !tv.validator.IsValidEstimate(*estimate) {
		ve.AddInvalidValueError("estimate", *estimate, "must be a positive number of hours")
	}
}

func (tv *TaskValidator) checkDue(ve *ValidationError, due *time.Time) {
	if due != nil && due.IsZero() {
		ve.AddRequiredError("due")
	}
}
