package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
)

// The workload is a handful of cron-driven maintenance tasks plus the mail
// fan-out they produce; a small worker pool on one queue is enough.
const workerConcurrency = 4

// TaskHandler binds a task type to its handler. The purge and scan handlers
// are injected this way because they carry store dependencies.
type TaskHandler struct {
	Type    string
	Handler asynq.HandlerFunc
}

// CronRegistration schedules a prepared task on a cron expression.
type CronRegistration struct {
	Spec    string
	Task    *asynq.Task
	Options []asynq.Option
}

// WorkerConfig collects what the worker needs at bootstrap.
type WorkerConfig struct {
	RedisOpts asynq.RedisClientOpt
	Logger    *slog.Logger
	Handlers  []TaskHandler
	Cron      []CronRegistration
}

// Worker runs the Asynq server and, when cron entries are registered, the
// scheduler that feeds it.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	scheduler *asynq.Scheduler
	logger    *slog.Logger
}

// NewWorker builds the worker. Mail delivery is always registered; everything
// else comes through cfg.Handlers.
func NewWorker(cfg WorkerConfig) (*Worker, error) {
	srv := asynq.NewServer(cfg.RedisOpts, asynq.Config{
		Concurrency: workerConcurrency,
		Queues:      map[string]int{QueueDefault: 1},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypeSendEmail, HandleSendEmailTask)
	for _, h := range cfg.Handlers {
		if h.Type == "" || h.Handler == nil {
			continue
		}
		mux.HandleFunc(h.Type, h.Handler)
	}

	var scheduler *asynq.Scheduler
	if len(cfg.Cron) > 0 {
		// Cron specs are evaluated in UTC so deployments agree on run times.
		scheduler = asynq.NewScheduler(cfg.RedisOpts, &asynq.SchedulerOpts{Location: time.UTC})
		for _, entry := range cfg.Cron {
			if entry.Spec == "" || entry.Task == nil {
				continue
			}
			if _, err := scheduler.Register(entry.Spec, entry.Task, entry.Options...); err != nil {
				return nil, fmt.Errorf("jobs: register cron %q: %w", entry.Spec, err)
			}
		}
	}

	return &Worker{server: srv, mux: mux, scheduler: scheduler, logger: cfg.Logger}, nil
}

// Run blocks until the context is cancelled or the server fails.
func (w *Worker) Run(ctx context.Context) error {
	if w == nil {
		return errors.New("jobs: worker not configured")
	}
	if w.scheduler != nil {
		if err := w.scheduler.Start(); err != nil {
			return fmt.Errorf("jobs: start scheduler: %w", err)
		}
		defer w.scheduler.Shutdown()
	}

	done := make(chan error, 1)
	go func() {
		done <- w.server.Run(w.mux)
	}()

	select {
	case <-ctx.Done():
		w.server.Shutdown()
		return ctx.Err()
	case err := <-done:
		return err
	}
}

// Client enqueues tasks from the API and the scan job.
type Client struct {
	client *asynq.Client
}

// NewClient opens an enqueue-only connection to the queue.
func NewClient(redisOpts asynq.RedisClientOpt) (*Client, error) {
	return &Client{client: asynq.NewClient(redisOpts)}, nil
}

// EnqueueSendEmail queues one reminder notification for delivery.
func (c *Client) EnqueueSendEmail(ctx context.Context, payload SendEmailPayload) (*asynq.TaskInfo, error) {
	task, err := NewSendEmailTask(payload)
	if err != nil {
		return nil, err
	}
	return c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
}

// Close releases the queue connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// Handler reports queue depth over HTTP so operators can see backlog without
// shelling into Redis.
type Handler struct {
	inspector *asynq.Inspector
	logger    *slog.Logger
}

// NewHandler builds the jobs HTTP handler.
func NewHandler(inspector *asynq.Inspector, logger *slog.Logger) *Handler {
	return &Handler{inspector: inspector, logger: logger}
}

// MountRoutes attaches job routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/health", h.health)
}

type queueHealth struct {
	Queue   string `json:"queue"`
	Pending int    `json:"pending"`
	Retry   int    `json:"retry"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	body := queueHealth{Queue: QueueDefault}
	if h.inspector != nil {
		info, err := h.inspector.GetQueueInfo(QueueDefault)
		if err != nil {
			h.logger.Warn("jobs health", slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
		if info != nil {
			body = queueHealth{Queue: info.Queue, Pending: info.Pending, Retry: info.Retry}
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}
