package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSessionsPurge removes expired refresh sessions.
	TaskSessionsPurge = "sessions:purge"
	// TaskRemindersScan finds due reminders and queues notification emails.
	TaskRemindersScan = "reminders:scan"
	// TaskTypeSendEmail is the task type for sending transactional emails.
	TaskTypeSendEmail = "mail:send"
)

// SendEmailPayload describes the information required to send an email.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewSendEmailTask constructs an Asynq task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// NewSessionsPurgeTask constructs the purge task. It carries no payload.
func NewSessionsPurgeTask() *asynq.Task {
	return asynq.NewTask(TaskSessionsPurge, nil)
}

// NewRemindersScanTask constructs the reminder scan task. It carries no payload.
func NewRemindersScanTask() *asynq.Task {
	return asynq.NewTask(TaskRemindersScan, nil)
}

// HandleSendEmailTask processes TaskTypeSendEmail tasks.
func HandleSendEmailTask(ctx context.Context, t *asynq.Task) error {
	var payload SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	// Placeholder: integrate with SMTP/Mailpit in phase 2.
	slog.Info("send email", slog.String("to", payload.To), slog.String("subject", payload.Subject))
	return nil
}
