package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	jobmetrics "github.com/codenamekii/Jobless/internal/jobs"
	"github.com/codenamekii/Jobless/internal/reminders"
)

// ReminderSource is the slice of the reminders repository the scan job needs.
type ReminderSource interface {
	ListDue(ctx context.Context, cutoff time.Time) ([]reminders.DueReminder, error)
	MarkNotified(ctx context.Context, ids []uuid.UUID) error
}

// Enqueuer submits follow-up tasks produced by a job.
type Enqueuer interface {
	EnqueueSendEmail(ctx context.Context, payload SendEmailPayload) (*asynq.TaskInfo, error)
}

// RemindersScanJob finds due reminders and queues one notification email per
// reminder, then stamps them so the next scan skips them.
type RemindersScanJob struct {
	Reminders ReminderSource
	Mailer    Enqueuer
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
	clock     func() time.Time
}

// NewRemindersScanJob wires dependencies for the scan handler.
func NewRemindersScanJob(source ReminderSource, mailer Enqueuer, logger *slog.Logger, metrics *jobmetrics.Metrics) *RemindersScanJob {
	return &RemindersScanJob{
		Reminders: source,
		Mailer:    mailer,
		Logger:    logger,
		Metrics:   metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes reminders:scan tasks.
func (j *RemindersScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Reminders == nil {
		return errors.New("reminders scan: handler not configured")
	}

	tracker := j.metrics().Track(TaskRemindersScan)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger()
	due, err := j.Reminders.ListDue(ctx, j.now())
	if err != nil {
		resultErr = err
		logger.Error("list due reminders", slog.Any("error", err))
		return resultErr
	}
	if len(due) == 0 {
		return resultErr
	}

	notified := make([]uuid.UUID, 0, len(due))
	for _, item := range due {
		if j.Mailer != nil {
			payload := SendEmailPayload{
				To:      item.UserEmail,
				Subject: fmt.Sprintf("Reminder: %s", item.Title),
				Body: fmt.Sprintf("Hi %s, your reminder %q for %s (%s) is due.",
					item.UserFullName, item.Title, item.CompanyName, item.Position),
			}
			if _, err := j.Mailer.EnqueueSendEmail(ctx, payload); err != nil {
				resultErr = err
				logger.Error("enqueue reminder email", slog.String("reminder_id", item.ID.String()), slog.Any("error", err))
				continue
			}
		}
		notified = append(notified, item.ID)
	}

	if err := j.Reminders.MarkNotified(ctx, notified); err != nil {
		resultErr = err
		logger.Error("mark reminders notified", slog.Any("error", err))
		return resultErr
	}
	j.metrics().AddNotifications(len(notified))
	logger.Info("reminder scan completed", slog.Int("due", len(due)), slog.Int("notified", len(notified)))
	return resultErr
}

func (j *RemindersScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskRemindersScan))
	}
	return slog.Default().With(slog.String("job", TaskRemindersScan))
}

func (j *RemindersScanJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *RemindersScanJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
