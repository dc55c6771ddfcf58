// The worker runs scheduled article generation. Clients connected to the API
// pick the new articles up on their next backlog replay.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"newswire/internal/handler/http/respond"
	pgRepo "newswire/internal/infra/adapter/persistence/postgres"
	"newswire/internal/infra/db"
	workerPkg "newswire/internal/infra/worker"
	"newswire/internal/observability/logging"
	artUC "newswire/internal/usecase/article"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	cfg, err := workerPkg.LoadConfigFromEnv()
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone),
		slog.Duration("generate_timeout", cfg.GenerateTimeout),
		slog.Int("generate_count", cfg.GenerateCount),
		slog.Int("health_port", cfg.HealthPort))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := workerPkg.NewMetrics()

	healthAddr := fmt.Sprintf(":%d", cfg.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health server started", slog.String("addr", healthAddr))

	articles := &artUC.Service{Repo: pgRepo.NewArticleRepo(database)}

	scheduler, err := startScheduler(logger, articles, cfg, metrics)
	if err != nil {
		logger.Error("failed to start scheduler", slog.Any("error", err))
		os.Exit(1)
	}
	healthServer.SetReady(true)
	logger.Info("worker started", slog.String("schedule", cfg.CronSchedule))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down worker...")

	cancel()
	<-scheduler.Stop().Done()
	logger.Info("worker stopped")
}

// initDatabase opens the connection pool and applies migrations. The API
// server runs the same migrations; both are idempotent so start order does
// not matter.
func initDatabase(logger *slog.Logger) *sql.DB {
	database, err := db.Open()
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Migrate(ctx, database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// startScheduler registers the generation job and starts the cron scheduler.
func startScheduler(logger *slog.Logger, articles *artUC.Service, cfg workerPkg.Config, metrics *workerPkg.Metrics) (*cron.Cron, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}

	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc(cfg.CronSchedule, func() {
		runGenerateJob(logger, articles, cfg, metrics)
	}); err != nil {
		return nil, fmt.Errorf("add cron job: %w", err)
	}
	c.Start()
	return c, nil
}

// runGenerateJob executes one generation run with timeout and metrics.
func runGenerateJob(logger *slog.Logger, articles *artUC.Service, cfg workerPkg.Config, metrics *workerPkg.Metrics) {
	start := time.Now()
	logger.Info("generation run started")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.GenerateTimeout)
	defer cancel()

	generated, err := articles.GenerateBatch(ctx, cfg.GenerateCount)
	if err != nil {
		logger.Error("generation run failed",
			slog.Int("generated", len(generated)),
			slog.String("error", respond.SanitizeError(err)))
		metrics.RecordRun("failure", time.Since(start))
		return
	}

	metrics.RecordRun("success", time.Since(start))
	logger.Info("generation run completed",
		slog.Int("generated", len(generated)),
		slog.Duration("duration", time.Since(start)))
}
