package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/codenamekii/Jobless/internal/app"
	"github.com/codenamekii/Jobless/internal/applications"
	"github.com/codenamekii/Jobless/internal/auth"
	"github.com/codenamekii/Jobless/internal/dashboard"
	"github.com/codenamekii/Jobless/internal/documents"
	"github.com/codenamekii/Jobless/internal/observability"
	"github.com/codenamekii/Jobless/internal/platform/db"
	"github.com/codenamekii/Jobless/internal/reminders"
	"github.com/codenamekii/Jobless/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	tokens := auth.NewTokenManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	gate := auth.NewMiddleware(tokens)

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo, tokens, logger)
	authHandler := auth.NewHandler(logger, authService, gate)

	// Application and reminder writes drop the writer's cached stats.
	dashboardCache := dashboard.NewCache(redisClient, cfg.DashboardCacheTTL)

	applicationsRepo := applications.NewRepository(pool)
	applicationsService := applications.NewService(applicationsRepo, dashboardCache)
	applicationsHandler := applications.NewHandler(logger, applicationsService)

	remindersRepo := reminders.NewRepository(pool)
	remindersService := reminders.NewService(remindersRepo, dashboardCache)
	remindersHandler := reminders.NewHandler(logger, remindersService)

	documentsRepo := documents.NewRepository(pool)
	documentsService := documents.NewService(documentsRepo)
	documentsHandler := documents.NewHandler(logger, documentsService)

	dashboardRepo := dashboard.NewRepository(pool)
	dashboardService := dashboard.NewService(dashboardRepo, dashboardCache, logger)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService)

	metrics := observability.NewMetrics()

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		Gate:                gate,
		AuthHandler:         authHandler,
		ApplicationsHandler: applicationsHandler,
		RemindersHandler:    remindersHandler,
		DocumentsHandler:    documentsHandler,
		DashboardHandler:    dashboardHandler,
		JobHandler:          jobHandler,
		Metrics:             metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
