// Package main - точка входа фонового воркера StudySpark.
// Воркер выполняет только запланированные задачи: сканирование
// напоминаний и прогрев кеша лидерборда. Интерактивного интерфейса
// здесь нет.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/studyspark/studyspark/config"
	"github.com/studyspark/studyspark/internal/domain/leaderboard"
	"github.com/studyspark/studyspark/internal/infrastructure/persistence/postgres"
	"github.com/studyspark/studyspark/internal/infrastructure/persistence/redis"
	"github.com/studyspark/studyspark/internal/infrastructure/scheduler"
	"github.com/studyspark/studyspark/internal/infrastructure/scheduler/jobs"
	"github.com/studyspark/studyspark/pkg/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. КОНФИГУРАЦИЯ И ЛОГИРОВАНИЕ
	// ─────────────────────────────────────────────────────────────────────────
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := logger.ParseLevel(cfg.Observability.LogLevel)
	format := logger.FormatText
	if cfg.Observability.LogFormat == "json" {
		format = logger.FormatJSON
	}
	log := logger.New(os.Stderr, level, format).With(logger.Fields{"component": "worker"})

	log.Info("starting StudySpark worker", logger.Fields{
		"env":     string(cfg.App.Environment),
		"version": cfg.App.Version,
	})

	// Воркер без базы бессмысленен: память процесса никому не видна.
	if cfg.Database.Disabled {
		return fmt.Errorf("worker requires DATABASE_URL")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. ХРАНИЛИЩА
	// ─────────────────────────────────────────────────────────────────────────
	conn, err := postgres.NewConnection(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer conn.Close()

	if cfg.Database.Migrate {
		if err := postgres.NewMigrator(conn).Migrate(ctx); err != nil {
			return err
		}
	}

	users := postgres.NewUserRepository(conn)
	reminders := postgres.NewReminderRepository(conn)

	var boardCache leaderboard.Cache
	if !cfg.Redis.Disabled {
		cache, err := redis.NewCache(redis.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			log.Warn("redis unavailable, leaderboard refresh disabled", logger.Fields{"error": err.Error()})
		} else {
			defer cache.Close()
			boardCache = redis.NewBoardCache(cache)
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 3. ПЛАНИРОВЩИК
	// ─────────────────────────────────────────────────────────────────────────
	sched := scheduler.NewScheduler(log)

	if err := sched.Register(
		jobs.NewReminderScanJob(reminders, log),
		scheduler.Every(cfg.Scheduler.ReminderScanInterval),
	); err != nil {
		return err
	}

	if boardCache != nil {
		if err := sched.Register(
			jobs.NewRefreshLeaderboardJob(users, leaderboard.NewRanker(), boardCache, log),
			scheduler.Every(cfg.Scheduler.RefreshLeaderboardInterval),
		); err != nil {
			return err
		}
	}

	if err := sched.Start(ctx); err != nil {
		return err
	}
	defer sched.Stop()

	log.Info("worker running", nil)
	<-ctx.Done()
	log.Info("shutting down", nil)
	return nil
}
