package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	rcron "github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"focusflow/internal/domain"
	"focusflow/internal/errors"
)

// Reminder scan defaults.
const (
	DefaultReminderInterval = time.Minute
	DefaultReminderLeadTime = time.Minute
)

// reminderServiceImpl implements the ReminderService interface
type reminderServiceImpl struct {
	repo        TaskRepository
	notifier    Notifier
	timeService TimeService
	interval    time.Duration
	leadTime    time.Duration
	logger      *zap.SugaredLogger

	mu     sync.Mutex
	cron   *rcron.Cron
	stopCh chan struct{}
}

// NewReminderService creates a new ReminderService instance
func NewReminderService(repo TaskRepository, notifier Notifier, timeService TimeService, interval, leadTime time.Duration, logger *zap.SugaredLogger) ReminderService {
	if interval <= 0 {
		interval = DefaultReminderInterval
	}
	if leadTime <= 0 {
		leadTime = DefaultReminderLeadTime
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &reminderServiceImpl{
		repo:        repo,
		notifier:    notifier,
		timeService: timeService,
		interval:    interval,
		leadTime:    leadTime,
		logger:      logger,
	}
}

// Enable asks the notifier for permission. Reminders are switched on only
// when it is granted; a denial leaves them off and returns a permission error.
func (r *reminderServiceImpl) Enable(ctx context.Context) error {
	granted := false
	if r.notifier != nil {
		var err error
		granted, err = r.notifier.RequestPermission(ctx)
		if err != nil {
			r.logger.Warnw("notification permission request failed", "error", err)
			granted = false
		}
	}

	if err := r.repo.SetReminders(ctx, granted); err != nil {
		return err
	}
	if !granted {
		return errors.NewPermissionError("enable reminders", "notifications")
	}
	r.logger.Infow("reminders enabled")
	return nil
}

// Disable switches reminders off
func (r *reminderServiceImpl) Disable(ctx context.Context) error {
	if err := r.repo.SetReminders(ctx, false); err != nil {
		return err
	}
	r.logger.Infow("reminders disabled")
	return nil
}

// Enabled reports the stored preference
func (r *reminderServiceImpl) Enabled() bool {
	return r.repo.Settings().Reminders
}

// Scan notifies open tasks that are due within the lead time or overdue.
// Each flag is claimed before notifying so an alert fires at most once per
// task and condition. Notifier failures are logged and skipped.
func (r *reminderServiceImpl) Scan(ctx context.Context, now time.Time) (*ScanResult, error) {
	result := &ScanResult{Upcoming: []string{}, Overdue: []string{}}
	if !r.Enabled() {
		return result, nil
	}

	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	for _, task := range r.repo.List() {
		if task.IsDone() || task.Due == nil {
			continue
		}

		diff := task.Due.Sub(now)
		switch {
		case diff > 0 && diff <= r.leadTime && !task.Notified:
			body := fmt.Sprintf("%s at %s", task.Title, r.timeService.HumanDue(task.Due, now))
			if r.claimAndNotify(ctx, task, domain.NotificationUpcoming, "Upcoming task", body, keep) {
				result.Upcoming = append(result.Upcoming, task.ID)
			}
		case diff < 0 && !task.OverdueNotified:
			body := fmt.Sprintf("%s is overdue.", task.Title)
			if r.claimAndNotify(ctx, task, domain.NotificationOverdue, "Overdue task", body, keep) {
				result.Overdue = append(result.Overdue, task.ID)
			}
		}
	}

	if result.Sent() > 0 {
		r.logger.Debugw("reminder scan", "upcoming", len(result.Upcoming), "overdue", len(result.Overdue))
	}
	return result, firstErr
}

func (r *reminderServiceImpl) claimAndNotify(ctx context.Context, task domain.Task, kind domain.NotificationKind, title, body string, keep func(error)) bool {
	claimed, err := r.repo.MarkNotified(ctx, task.ID, kind)
	keep(err)
	if !claimed {
		return false
	}

	if r.notifier != nil {
		if err := r.notifier.Notify(ctx, title, body); err != nil {
			r.logger.Warnw("notification failed", "task", task.ID, "error", err)
		}
	}
	return true
}

// Start runs Scan every interval until Stop is called or ctx is done
func (r *reminderServiceImpl) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cron != nil {
		return nil
	}

	c := rcron.New()
	schedule := "@every " + r.interval.String()
	if _, err := c.AddFunc(schedule, func() { r.tick(ctx) }); err != nil {
		return errors.NewInvalidInputError("reminders.interval", r.interval.String(), err.Error())
	}

	stopCh := make(chan struct{})
	r.cron = c
	r.stopCh = stopCh
	c.Start()
	r.logger.Infow("reminder scheduler started", "interval", r.interval, "lead_time", r.leadTime)

	go func() {
		select {
		case <-ctx.Done():
			r.Stop()
		case <-stopCh:
		}
	}()
	return nil
}

func (r *reminderServiceImpl) tick(ctx context.Context) {
	if _, err := r.Scan(ctx, r.timeService.Now()); err != nil {
		r.logger.Errorw("reminder scan failed", "error", err)
	}
}

// Stop halts the scheduler and waits for a running scan to finish
func (r *reminderServiceImpl) Stop() {
	r.mu.Lock()
	c, stopCh := r.cron, r.stopCh
	r.cron, r.stopCh = nil, nil
	r.mu.Unlock()

	if c == nil {
		return
	}
	close(stopCh)

	stopCtx := c.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
		r.logger.Warnw("reminder scheduler stop timed out")
	}
	r.logger.Infow("reminder scheduler stopped")
}
