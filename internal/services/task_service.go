package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"focusflow/internal/domain"
	"focusflow/internal/errors"
	"focusflow/internal/quickadd"
	"focusflow/internal/validation"
)

// TaskDefaults are the fallbacks the task workflows apply on top of the
// repository defaults.
type TaskDefaults struct {
	// List is used by quick-add, which ignores any list in the phrase.
	List string
	// Priority is used by form create when neither the form nor the title sets one.
	Priority domain.Priority
	// QuickPriority is used by quick-add when the phrase has no priority word.
	QuickPriority domain.Priority
}

// DefaultTaskDefaults returns the built-in workflow defaults.
func DefaultTaskDefaults() TaskDefaults {
	return TaskDefaults{
		List:          domain.DefaultList,
		Priority:      domain.DefaultPriority,
		QuickPriority: domain.PriorityMedium,
	}
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo          TaskRepository
	timeService   TimeService
	taskValidator *validation.TaskValidator
	defaults      TaskDefaults
	logger        *zap.SugaredLogger
}

// NewTaskService creates a new TaskService instance
func NewTaskService(repo TaskRepository, timeService TimeService, taskValidator *validation.TaskValidator, defaults TaskDefaults, logger *zap.SugaredLogger) TaskService {
	if taskValidator == nil {
		taskValidator = validation.NewTaskValidator()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if defaults.List == "" {
		defaults.List = domain.DefaultList
	}
	if !defaults.Priority.IsValid() {
		defaults.Priority = domain.DefaultPriority
	}
	if !defaults.QuickPriority.IsValid() {
		defaults.QuickPriority = domain.PriorityMedium
	}
	return &taskServiceImpl{
		repo:          repo,
		timeService:   timeService,
		taskValidator: taskValidator,
		defaults:      defaults,
		logger:        logger,
	}
}

// normalizeTags trims form tags, drops blanks and strips one leading '#'
// so "#work" and "work" are the same tag.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// positiveEstimate treats an estimate of 0 as no estimate
func positiveEstimate(hours *float64) *float64 {
	if hours == nil || *hours == 0 {
		return nil
	}
	return hours
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// validationFailure converts a validator result to an application error
func validationFailure(err error) error {
	if ve, ok := validation.As(err); ok {
		return ve.ToAppError()
	}
	return errors.NewValidationError("invalid input", err)
}

// committed reports whether err still leaves the mutation applied. Only
// lookups that fail leave the repository untouched.
func committed(err error) bool {
	return err == nil || !errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// Create creates a task from form fields. The title is parsed for hints;
// explicit fields take precedence and tags are form tags then parsed tags.
// When only the save fails the created task is returned with the error.
func (t *taskServiceImpl) Create(ctx context.Context, req CreateRequest) (*domain.Task, error) {
	raw := strings.TrimSpace(req.Title)
	parsed := quickadd.Parse(raw, t.timeService.Now())

	title := parsed.Title
	if title == "" {
		title = raw
	}

	priority := t.defaults.Priority
	switch {
	case req.Priority != nil:
		priority = *req.Priority
	case parsed.Priority != nil:
		priority = *parsed.Priority
	}

	due := req.Due
	if due == nil {
		due = parsed.Due
	}

	tags := normalizeTags(req.Tags)
	tags = append(tags, parsed.Tags...)

	in := domain.NewTask{
		Title:        title,
		Description:  strings.TrimSpace(req.Description),
		List:         req.List,
		Tags:         tags,
		Priority:     priority,
		Due:          due,
		Estimate:     positiveEstimate(req.Estimate),
		Repeat:       req.Repeat,
		Color:        req.Color,
		Dependencies: req.Dependencies,
		Status:       domain.StatusTodo,
	}
	return t.create(ctx, in)
}

// QuickAdd creates a task from a natural-language phrase alone
func (t *taskServiceImpl) QuickAdd(ctx context.Context, text string) (*domain.Task, error) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		ve := validation.NewValidationError()
		ve.AddRequiredError("text")
		return nil, ve.ToAppError()
	}

	parsed := quickadd.Parse(raw, t.timeService.Now())

	title := parsed.Title
	if title == "" {
		title = raw
	}
	priority := t.defaults.QuickPriority
	if parsed.Priority != nil {
		priority = *parsed.Priority
	}

	return t.create(ctx, domain.NewTask{
		Title:    title,
		List:     t.defaults.List,
		Tags:     parsed.Tags,
		Priority: priority,
		Due:      parsed.Due,
	})
}

func (t *taskServiceImpl) create(ctx context.Context, in domain.NewTask) (*domain.Task, error) {
	if err := t.taskValidator.ValidateNewTask(in); err != nil {
		return nil, validationFailure(err)
	}

	task, err := t.repo.Create(ctx, in)
	t.logger.Debugw("task created", "id", task.ID, "title", task.Title, "due", task.Due)
	return &task, err
}

// Edit applies the fields set in req. A blank title or color keeps the
// previous one and an estimate of 0 clears the estimate.
func (t *taskServiceImpl) Edit(ctx context.Context, id string, req EditRequest) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return nil, validationFailure(err)
	}

	req.Title = trimmedOrNil(req.Title)
	req.Color = trimmedOrNil(req.Color)
	if req.Tags != nil {
		tags := normalizeTags(*req.Tags)
		req.Tags = &tags
	}
	if req.Estimate != nil && *req.Estimate == 0 {
		req.Estimate = nil
		req.ClearEstimate = true
	}

	patch := req.Patch()
	if err := t.taskValidator.ValidatePatch(patch); err != nil {
		return nil, validationFailure(err)
	}

	task, err := t.repo.Update(ctx, id, patch)
	if !committed(err) {
		return nil, err
	}
	t.logger.Debugw("task edited", "id", id)
	return &task, err
}

// SetStatus moves a task to a column. It never spawns a successor.
func (t *taskServiceImpl) SetStatus(ctx context.Context, id string, status domain.Status) (*TaskChange, error) {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return nil, validationFailure(err)
	}
	if !status.IsValid() {
		return nil, errors.NewInvalidInputError("status", string(status), "must be one of todo, doing, done, blocked")
	}

	task, err := t.repo.Update(ctx, id, domain.StatusPatch(status))
	if !committed(err) {
		return nil, err
	}
	t.logger.Debugw("task moved", "id", id, "status", status)
	return &TaskChange{Task: &task}, err
}

// Complete marks a task done. When the task repeats and has a due date a
// successor is created with the due date advanced by one cadence step.
// Completing a task that is already done changes nothing.
func (t *taskServiceImpl) Complete(ctx context.Context, id string) (*TaskChange, error) {
	current, err := t.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.IsDone() {
		return &TaskChange{Task: current}, nil
	}

	done, saveErr := t.repo.Update(ctx, id, domain.StatusPatch(domain.StatusDone))
	if !committed(saveErr) {
		return nil, saveErr
	}
	change := &TaskChange{Task: &done}

	if !current.IsRecurring() {
		return change, saveErr
	}
	next, ok := t.timeService.NextOccurrence(*current.Due, current.Repeat)
	if !ok {
		return change, saveErr
	}

	successor, err := t.repo.Create(ctx, domain.NewTask{
		Title:        current.Title,
		Description:  current.Description,
		List:         current.List,
		Tags:         current.Tags,
		Priority:     current.Priority,
		Due:          &next,
		Estimate:     current.Estimate,
		Repeat:       current.Repeat,
		Color:        current.Color,
		Dependencies: current.Dependencies,
		Status:       domain.StatusTodo,
	})
	change.Spawned = &successor
	t.logger.Debugw("recurring task spawned", "from", id, "id", successor.ID, "due", next)

	if saveErr == nil {
		saveErr = err
	}
	return change, saveErr
}

// ToggleDone flips between done and todo, spawning on the way to done
func (t *taskServiceImpl) ToggleDone(ctx context.Context, id string) (*TaskChange, error) {
	current, err := t.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.IsDone() {
		return t.SetStatus(ctx, id, domain.StatusTodo)
	}
	return t.Complete(ctx, id)
}

// Delete removes a task. Unknown ids are ignored.
func (t *taskServiceImpl) Delete(ctx context.Context, id string) error {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return validationFailure(err)
	}
	if err := t.repo.Delete(ctx, id); err != nil {
		return err
	}
	t.logger.Debugw("task deleted", "id", id)
	return nil
}

// Get retrieves a task by its ID
func (t *taskServiceImpl) Get(ctx context.Context, id string) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return nil, validationFailure(err)
	}

	task, ok := t.repo.Get(id)
	if !ok {
		return nil, errors.NewNotFoundError("task", id)
	}
	return &task, nil
}

// List returns every task in insertion order
func (t *taskServiceImpl) List(ctx context.Context) []domain.Task {
	return t.repo.List()
}

// Reset empties the board and restarts ids at 0001
func (t *taskServiceImpl) Reset(ctx context.Context) error {
	if err := t.repo.Reset(ctx); err != nil {
		return err
	}
	t.logger.Infow("board reset")
	return nil
}
