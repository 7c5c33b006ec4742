package api

import (
	"context"
	"time"

	"go.uber.org/zap"

	"focusflow/internal/config"
	"focusflow/internal/domain"
	"focusflow/internal/errors"
	"focusflow/internal/logging"
	"focusflow/internal/repository"
	"focusflow/internal/services"
	"focusflow/internal/storage"
	"focusflow/internal/validation"
)

// Option configures Open.
type Option func(*options)

type options struct {
	now      func() time.Time
	notifier services.Notifier
}

// WithClock replaces time.Now for every service.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithNotifier sets where reminder alerts go. Without one reminders
// cannot be enabled.
func WithNotifier(n services.Notifier) Option {
	return func(o *options) {
		o.notifier = n
	}
}

// Open loads the board from store once and wires the services around it.
// Every later mutation is written back to the same store.
func Open(ctx context.Context, store storage.Store, cfg *config.Config, logger *zap.SugaredLogger, opts ...Option) (API, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if logger == nil {
		logger = logging.Nop()
	}
	o := &options{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	mapper := domain.NewMapper()
	state, err := loadAll(ctx, store, mapper)
	if err != nil {
		return nil, err
	}

	save := func(ctx context.Context, state domain.State) error {
		if err := store.Save(ctx, mapper.State.ToRecord(state)); err != nil {
			logger.Errorw("failed to save board", "error", err)
			return errors.NewStorageError("save board", err)
		}
		return nil
	}

	priority, _ := domain.ParsePriority(cfg.Defaults.Priority)
	quickPriority, _ := domain.ParsePriority(cfg.Defaults.QuickPriority)

	repo := repository.New(save,
		repository.WithClock(o.now),
		repository.WithDefaults(repository.Defaults{
			Title:    cfg.Defaults.Title,
			List:     cfg.Defaults.List,
			Priority: priority,
			Color:    cfg.Defaults.Color,
		}),
	)
	repo.Restore(state)
	logger.Debugw("board loaded", "tasks", len(state.Tasks), "seq", state.Seq, "reminders", state.Settings.Reminders)

	timeService := services.NewTimeService(o.now, cfg.Display.TimeFormat)
	taskValidator := validation.NewTaskValidatorWith(validation.NewValidatorWithConfig(cfg))
	taskService := services.NewTaskService(repo, timeService, taskValidator, services.TaskDefaults{
		List:          cfg.Defaults.List,
		Priority:      priority,
		QuickPriority: quickPriority,
	}, logger)

	container := &services.ServiceContainer{
		TimeService:      timeService,
		TaskService:      taskService,
		SearchService:    services.NewSearchService(timeService),
		ReportingService: services.NewReportingService(timeService),
		ReminderService: services.NewReminderService(repo, o.notifier, timeService,
			cfg.Reminders.Interval, cfg.Reminders.LeadTime, logger),
		TransferService: services.NewTransferService(repo, mapper, logger),
		VoiceService:    services.NewVoiceService(taskService, logger),
	}

	return newBusinessAPI(container, store, logger), nil
}

// loadAll reads the stored board. A store that has never been written
// yields an empty board.
func loadAll(ctx context.Context, store storage.Store, mapper *domain.Mapper) (domain.State, error) {
	rec, err := store.Load(ctx)
	if err != nil {
		return domain.State{}, errors.NewStorageError("load board", err)
	}
	if rec == nil {
		return domain.State{Tasks: []domain.Task{}, Seq: 1}, nil
	}

	state, err := mapper.State.FromRecord(rec, domain.Settings{})
	if err != nil {
		return domain.State{}, errors.NewStorageError("load board", err)
	}
	return state, nil
}
