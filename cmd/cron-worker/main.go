package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	addresssvc "github.com/sirawitp/siamshop-backend/internal/address"
	"github.com/sirawitp/siamshop-backend/internal/cron"
	"github.com/sirawitp/siamshop-backend/pkg/config"
	"github.com/sirawitp/siamshop-backend/pkg/geodata"
	"github.com/sirawitp/siamshop-backend/pkg/logger"
	"github.com/sirawitp/siamshop-backend/pkg/metrics"
	"github.com/sirawitp/siamshop-backend/pkg/redis"
)

const lockKeyFormat = "ss:cron-worker:lock:%s"

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

	cfg.Service.Kind = "cron-worker"

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

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

	geoClient, err := geodata.NewClient(cfg.Address.ProvinceURL, cfg.Address.DistrictURL, geodata.WithTimeout(cfg.Address.FetchTimeout))
	if err != nil {
		logg.Error(context.Background(), "failed to create geodata client", err)
		os.Exit(1)
	}

	addressService, err := addresssvc.NewService(geoClient, redisClient, redisClient, cfg.Address.CacheTTL, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create address service", err)
		os.Exit(1)
	}

	refreshJob, err := cron.NewAddressRefreshJob(cron.AddressRefreshJobParams{
		Logger:    logg,
		Refresher: addressService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create address refresh job", err)
		os.Exit(1)
	}

	metricsCollector := metrics.NewCronJobMetrics(prometheus.DefaultRegisterer)
	lock, err := cron.NewRedisLock(redisClient, lockKey(cfg.App.Env), cfg.Cron.LockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(refreshJob),
		Lock:     lock,
		Metrics:  metricsCollector,
		Interval: cfg.Cron.AddressRefreshInterval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
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
