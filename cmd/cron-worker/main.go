// Command cron-worker runs the scheduled background jobs, currently
// the cart-clear sweep.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rakibulhaque/trendibay-backend/internal/cart"
	"github.com/rakibulhaque/trendibay-backend/internal/checkout"
	"github.com/rakibulhaque/trendibay-backend/internal/cron"
	"github.com/rakibulhaque/trendibay-backend/pkg/config"
	"github.com/rakibulhaque/trendibay-backend/pkg/db"
	"github.com/rakibulhaque/trendibay-backend/pkg/logger"
	"github.com/rakibulhaque/trendibay-backend/pkg/metrics"
	"github.com/rakibulhaque/trendibay-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("trendibay-cron", "dev", "info", os.Stderr).Fatal("load config", err)
	}

	logg := logger.New("trendibay-cron", cfg.App.Env, cfg.App.LogLevel, os.Stdout)

	client, err := db.NewClient(cfg.DB, cfg.IsDev())
	if err != nil {
		logg.Fatal("connect postgres", err)
	}
	defer client.Close()

	cache := redis.NewClient(cfg.Redis)
	defer cache.Close()

	cartRepo := cart.NewRepository(client.Gorm())
	intentRepo := checkout.NewIntentRepository(client.Gorm())

	sweep, err := cron.NewCartClearSweep(cartRepo, intentRepo, cache, cfg.Cron.CartClearMinAge)
	if err != nil {
		logg.Fatal("build cart clear sweep", err)
	}

	lock, err := cron.NewRedisLock(cache, redis.CronLockKey("worker"), cfg.Cron.LockTTL)
	if err != nil {
		logg.Fatal("build cron lock", err)
	}

	promRegistry := prometheus.NewRegistry()
	cronMetrics := metrics.NewCronJobMetrics(promRegistry)

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(sweep),
		Lock:     lock,
		Metrics:  cronMetrics,
		Interval: cfg.Cron.CartClearSweepInterval,
	})
	if err != nil {
		logg.Fatal("build cron service", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logg.Info("cron worker started")
	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Fatal("cron worker", err)
	}
	logg.Info("cron worker stopped")
}
