package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/codenamekii/Jobless/internal/app"
	"github.com/codenamekii/Jobless/internal/auth"
	jobmetrics "github.com/codenamekii/Jobless/internal/jobs"
	"github.com/codenamekii/Jobless/internal/platform/db"
	"github.com/codenamekii/Jobless/internal/reminders"
	"github.com/codenamekii/Jobless/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}

	mailer, err := jobs.NewClient(redisOpts)
	if err != nil {
		logger.Error("init jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := mailer.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()

	metrics := jobmetrics.NewMetrics(nil)
	purgeJob := jobs.NewSessionsPurgeJob(auth.NewRepository(pool), logger, metrics)
	scanJob := jobs.NewRemindersScanJob(reminders.NewRepository(pool), mailer, logger, metrics)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: redisOpts,
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskSessionsPurge, Handler: purgeJob.Handle},
			{Type: jobs.TaskRemindersScan, Handler: scanJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 * * * *", Task: jobs.NewSessionsPurgeTask(), Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "*/15 * * * *", Task: jobs.NewRemindersScanTask(), Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
