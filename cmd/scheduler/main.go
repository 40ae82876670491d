package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/crediteval/credit-engine/internal/config"
	"github.com/crediteval/credit-engine/internal/domain"
	"github.com/crediteval/credit-engine/internal/logger"
	"github.com/crediteval/credit-engine/internal/repository"
	"github.com/crediteval/credit-engine/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLogger.Sync()

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	reportRepo := repository.NewReportRepository(db)
	reportService := service.NewReportService(reportRepo, redisClient, cfg, zapLogger)

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		zapLogger.Fatal("invalid scheduler timezone", zap.Error(err))
	}

	c := cron.New(cron.WithSeconds(), cron.WithLocation(location))

	setupCronJobs(c, reportService, zapLogger)

	c.Start()
	zapLogger.Info("scheduler started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down scheduler")
	c.Stop()
	zapLogger.Info("scheduler stopped")
}

func setupCronJobs(c *cron.Cron, reportService *service.ReportService, zapLogger *zap.Logger) {
	// Nightly statistics cache warm-up (runs at midnight)
	_, err := c.AddFunc("0 0 0 * * *", func() {
		refreshStatistics(reportService, zapLogger)
	})
	if err != nil {
		zapLogger.Error("failed to schedule statistics refresh job", zap.Error(err))
	}

	// Morning digest of reports waiting on a reviewer (runs at 8 AM)
	_, err = c.AddFunc("0 0 8 * * *", func() {
		logPendingDigest(reportService, zapLogger)
	})
	if err != nil {
		zapLogger.Error("failed to schedule pending digest job", zap.Error(err))
	}
}

// refreshStatistics recomputes the aggregates so the first dashboard hit
// of the day is served from cache.
func refreshStatistics(reportService *service.ReportService, zapLogger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stats, err := reportService.Statistics(ctx)
	if err != nil {
		zapLogger.Error("statistics refresh failed", zap.Error(err))
		return
	}

	zapLogger.Info("statistics cache refreshed",
		zap.Int("total_reports", stats.Total),
		zap.Float64("avg_score", stats.AverageScore),
	)
}

// logPendingDigest surfaces how many reports are sitting in the reviewer
// queues. Visibility only; no state is mutated.
func logPendingDigest(reportService *service.ReportService, zapLogger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pending, err := reportService.ListByStatus(ctx, domain.StatusPending)
	if err != nil {
		zapLogger.Error("pending digest failed", zap.Error(err))
		return
	}

	corrections, err := reportService.ListByStatus(ctx, domain.StatusNeedsCorrection)
	if err != nil {
		zapLogger.Error("pending digest failed", zap.Error(err))
		return
	}

	zapLogger.Info("reviewer queue digest",
		zap.Int("pending", len(pending)),
		zap.Int("needs_correction", len(corrections)),
	)
}
