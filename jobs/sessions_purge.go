package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/codenamekii/Jobless/internal/jobs"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// SessionStore is the slice of the auth repository the purge job needs.
type SessionStore interface {
	DeleteExpiredSessions(ctx context.Context, cutoff time.Time) (int64, error)
}

// SessionsPurgeJob removes refresh sessions that expired and can never be
// redeemed again.
type SessionsPurgeJob struct {
	Sessions SessionStore
	Logger   *slog.Logger
	Metrics  *jobmetrics.Metrics
	clock    func() time.Time
}

// NewSessionsPurgeJob wires dependencies for the purge handler.
func NewSessionsPurgeJob(sessions SessionStore, logger *slog.Logger, metrics *jobmetrics.Metrics) *SessionsPurgeJob {
	return &SessionsPurgeJob{
		Sessions: sessions,
		Logger:   logger,
		Metrics:  metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes sessions:purge tasks.
func (j *SessionsPurgeJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Sessions == nil {
		return errors.New("sessions purge: handler not configured")
	}

	tracker := j.metrics().Track(TaskSessionsPurge)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger()
	purged, err := j.Sessions.DeleteExpiredSessions(ctx, j.now())
	if err != nil {
		resultErr = err
		logger.Error("purge expired sessions", slog.Any("error", err))
		return resultErr
	}
	j.metrics().AddPurgedSessions(purged)
	if purged > 0 {
		logger.Info("purged expired sessions", slog.Int64("count", purged))
	}
	return resultErr
}

func (j *SessionsPurgeJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskSessionsPurge))
	}
	return slog.Default().With(slog.String("job", TaskSessionsPurge))
}

func (j *SessionsPurgeJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *SessionsPurgeJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
