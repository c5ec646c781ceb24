package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jobmetrics "github.com/codenamekii/Jobless/internal/jobs"
	"github.com/codenamekii/Jobless/internal/reminders"
	_ "github.com/codenamekii/Jobless/testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMetrics() *jobmetrics.Metrics {
	return jobmetrics.NewMetrics(prometheus.NewRegistry())
}

type fakeSessionStore struct {
	purged int64
	err    error
	cutoff time.Time
}

func (f *fakeSessionStore) DeleteExpiredSessions(ctx context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.purged, f.err
}

func TestSessionsPurgeHandle(t *testing.T) {
	store := &fakeSessionStore{purged: 4}
	job := NewSessionsPurgeJob(store, testLogger(), testMetrics())

	err := job.Handle(context.Background(), NewSessionsPurgeTask())
	require.NoError(t, err)
	assert.False(t, store.cutoff.IsZero())
}

func TestSessionsPurgePropagatesError(t *testing.T) {
	store := &fakeSessionStore{err: errors.New("boom")}
	job := NewSessionsPurgeJob(store, testLogger(), testMetrics())

	err := job.Handle(context.Background(), NewSessionsPurgeTask())
	assert.Error(t, err)
}

func TestSessionsPurgeUnconfigured(t *testing.T) {
	var job *SessionsPurgeJob
	assert.Error(t, job.Handle(context.Background(), NewSessionsPurgeTask()))
}

type fakeReminderSource struct {
	due      []reminders.DueReminder
	listErr  error
	notified []uuid.UUID
	markErr  error
}

func (f *fakeReminderSource) ListDue(ctx context.Context, cutoff time.Time) ([]reminders.DueReminder, error) {
	return f.due, f.listErr
}

func (f *fakeReminderSource) MarkNotified(ctx context.Context, ids []uuid.UUID) error {
	f.notified = ids
	return f.markErr
}

type fakeEnqueuer struct {
	sent    []SendEmailPayload
	failFor string
}

func (f *fakeEnqueuer) EnqueueSendEmail(ctx context.Context, payload SendEmailPayload) (*asynq.TaskInfo, error) {
	if f.failFor != "" && payload.To == f.failFor {
		return nil, errors.New("queue unavailable")
	}
	f.sent = append(f.sent, payload)
	return &asynq.TaskInfo{}, nil
}

func dueReminder(email, title string) reminders.DueReminder {
	return reminders.DueReminder{
		Reminder: reminders.Reminder{
			ID:           uuid.New(),
			Title:        title,
			ReminderDate: time.Now().Add(-time.Hour),
		},
		UserEmail:    email,
		UserFullName: "Ana Example",
		CompanyName:  "Acme",
		Position:     "Backend Engineer",
	}
}

func TestRemindersScanQueuesAndMarks(t *testing.T) {
	source := &fakeReminderSource{due: []reminders.DueReminder{
		dueReminder("ana@example.com", "Follow up"),
		dueReminder("bob@example.com", "Prepare interview"),
	}}
	mailer := &fakeEnqueuer{}
	job := NewRemindersScanJob(source, mailer, testLogger(), testMetrics())

	err := job.Handle(context.Background(), NewRemindersScanTask())
	require.NoError(t, err)
	require.Len(t, mailer.sent, 2)
	assert.Contains(t, mailer.sent[0].Subject, "Follow up")
	assert.Len(t, source.notified, 2)
}

func TestRemindersScanSkipsFailedEnqueue(t *testing.T) {
	broken := dueReminder("down@example.com", "Never sent")
	fine := dueReminder("ana@example.com", "Follow up")
	source := &fakeReminderSource{due: []reminders.DueReminder{broken, fine}}
	mailer := &fakeEnqueuer{failFor: "down@example.com"}
	job := NewRemindersScanJob(source, mailer, testLogger(), testMetrics())

	err := job.Handle(context.Background(), NewRemindersScanTask())
	assert.Error(t, err)
	// The reminder that failed to enqueue stays unmarked for the next scan.
	require.Len(t, source.notified, 1)
	assert.Equal(t, fine.ID, source.notified[0])
}

func TestRemindersScanNothingDue(t *testing.T) {
	source := &fakeReminderSource{}
	mailer := &fakeEnqueuer{}
	job := NewRemindersScanJob(source, mailer, testLogger(), testMetrics())

	err := job.Handle(context.Background(), NewRemindersScanTask())
	require.NoError(t, err)
	assert.Empty(t, mailer.sent)
	assert.Nil(t, source.notified)
}

func TestSendEmailTaskRoundTrip(t *testing.T) {
	task, err := NewSendEmailTask(SendEmailPayload{To: "ana@example.com", Subject: "Hi", Body: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, TaskTypeSendEmail, task.Type())
	assert.NoError(t, HandleSendEmailTask(context.Background(), task))
}

func TestSendEmailTaskBadPayload(t *testing.T) {
	task := asynq.NewTask(TaskTypeSendEmail, []byte("{broken"))
	err := HandleSendEmailTask(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
