package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Wizhill05/car-rental/internal/cron"
	"github.com/Wizhill05/car-rental/internal/notifications"
	"github.com/Wizhill05/car-rental/pkg/config"
	"github.com/Wizhill05/car-rental/pkg/db"
	"github.com/Wizhill05/car-rental/pkg/logger"
	"github.com/Wizhill05/car-rental/pkg/mailer"
	"github.com/Wizhill05/car-rental/pkg/metrics"
	"github.com/Wizhill05/car-rental/pkg/migrate"
	"github.com/Wizhill05/car-rental/pkg/redis"
)

const lockKeyFormat = "carrental:cron-worker:lock:%s"

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	emails := mailer.New(cfg.Sendgrid, logg)
	notificationService := notifications.NewService(
		notifications.NewRepository(dbClient.DB()),
		emails,
		logg,
	)

	metricsCollector := metrics.NewCronJobMetrics(prometheus.DefaultRegisterer)
	lock, err := cron.NewRedisLock(redisClient, lockKey(cfg.App.Env), cfg.Cron.LockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	reminderJob, err := cron.NewExpiringRentalsJob(cron.ExpiringRentalsJobParams{
		Logger:        logg,
		Notifications: notificationService,
		DaysAhead:     cfg.Cron.ReminderDays,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reminder job", err)
		os.Exit(1)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(reminderJob),
		Lock:     lock,
		Metrics:  metricsCollector,
		Interval: cfg.Cron.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env})
	logg.Info(ctx, "starting cron worker")

	if cfg.Cron.MetricsAddress != "" {
		go serveMetrics(ctx, logg, cfg.Cron.MetricsAddress)
	}

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}

func serveMetrics(ctx context.Context, logg *logger.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	logg.Info(logg.WithField(ctx, "addr", addr), "serving cron metrics")
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "metrics server stopped unexpectedly", err)
	}
}

func lockKey(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf(lockKeyFormat, env)
}
