package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/scootly/scootly-backend/internal/bookings"
	"github.com/scootly/scootly-backend/internal/cron"
	"github.com/scootly/scootly-backend/internal/notifications"
	"github.com/scootly/scootly-backend/internal/scooters"
	"github.com/scootly/scootly-backend/internal/stores"
	"github.com/scootly/scootly-backend/internal/users"
	"github.com/scootly/scootly-backend/pkg/config"
	"github.com/scootly/scootly-backend/pkg/db"
	"github.com/scootly/scootly-backend/pkg/logger"
	"github.com/scootly/scootly-backend/pkg/mailer"
	"github.com/scootly/scootly-backend/pkg/metrics"
	"github.com/scootly/scootly-backend/pkg/migrate"
	"github.com/scootly/scootly-backend/pkg/redis"
)

const lockKeyFormat = "scootly:cron-worker:lock:%s"

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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	userRepo := users.NewRepository(dbClient.DB())
	storeRepo := stores.NewRepository(dbClient.DB())
	scooterRepo := scooters.NewRepository(dbClient.DB())
	bookingRepo := bookings.NewRepository(dbClient.DB())

	var mail mailer.Mailer
	if cfg.SMTP.Enabled() {
		smtpMailer, err := mailer.NewSMTP(cfg.SMTP)
		if err != nil {
			logg.Error(context.Background(), "failed to create smtp mailer", err)
			os.Exit(1)
		}
		mail = smtpMailer
	} else {
		mail = mailer.Noop{}
	}

	notifier, err := notifications.NewService(mail, userRepo, storeRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create notification service", err)
		os.Exit(1)
	}

	bookingService, err := bookings.NewService(bookingRepo, scooterRepo, dbClient, notifier)
	if err != nil {
		logg.Error(context.Background(), "failed to create booking service", err)
		os.Exit(1)
	}

	completionJob, err := cron.NewBookingCompletionJob(cron.BookingCompletionJobParams{
		Logger:   logg,
		Bookings: bookingService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create booking completion job", err)
		os.Exit(1)
	}

	metricsCollector := metrics.NewCronJobMetrics(prometheus.DefaultRegisterer)
	lock, err := cron.NewRedisLock(redisClient, lockKey(cfg.App.Env), 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(completionJob),
		Lock:     lock,
		Metrics:  metricsCollector,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env": cfg.App.Env,
	})
	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}

func lockKey(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf(lockKeyFormat, env)
}
