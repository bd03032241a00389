// Package main - точка входа интерактивного приложения StudySpark.
//
// Архитектура следует принципам Clean Architecture и DDD:
// - Domain: чистая бизнес-логика без внешних зависимостей
// - Application: оркестрация use cases (Commands/Queries)
// - Infrastructure: реализация хранилищ, внешние API
// - Interface: терминальное меню
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/studyspark/studyspark/config"
	"github.com/studyspark/studyspark/internal/application/command"
	"github.com/studyspark/studyspark/internal/application/query"
	"github.com/studyspark/studyspark/internal/domain/group"
	"github.com/studyspark/studyspark/internal/domain/leaderboard"
	"github.com/studyspark/studyspark/internal/domain/reminder"
	"github.com/studyspark/studyspark/internal/domain/session"
	"github.com/studyspark/studyspark/internal/domain/user"
	"github.com/studyspark/studyspark/internal/infrastructure/external/quotes"
	"github.com/studyspark/studyspark/internal/infrastructure/persistence/memory"
	"github.com/studyspark/studyspark/internal/infrastructure/persistence/postgres"
	"github.com/studyspark/studyspark/internal/infrastructure/persistence/redis"
	"github.com/studyspark/studyspark/internal/infrastructure/scheduler"
	"github.com/studyspark/studyspark/internal/infrastructure/scheduler/jobs"
	"github.com/studyspark/studyspark/internal/interface/cli"
	"github.com/studyspark/studyspark/pkg/circuitbreaker"
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

// repositories bundles the storage implementations, whichever backend
// provides them.
type repositories struct {
	users     user.Repository
	sessions  session.Repository
	groups    group.Repository
	reminders reminder.Repository
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. ЗАГРУЗКА КОНФИГУРАЦИИ
	// ─────────────────────────────────────────────────────────────────────────
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. НАСТРОЙКА ЛОГИРОВАНИЯ
	// ─────────────────────────────────────────────────────────────────────────
	log := setupLogger(cfg)
	log.Info("starting StudySpark", logger.Fields{
		"env":     string(cfg.App.Environment),
		"version": cfg.App.Version,
	})

	// ─────────────────────────────────────────────────────────────────────────
	// 3. ПОДКЛЮЧЕНИЕ К ХРАНИЛИЩУ (PostgreSQL или память)
	// ─────────────────────────────────────────────────────────────────────────
	repos, cleanup, err := setupStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	// ─────────────────────────────────────────────────────────────────────────
	// 4. REDIS (опциональный кеш лидерборда)
	// ─────────────────────────────────────────────────────────────────────────
	boardCache, closeCache := setupBoardCache(cfg, log)
	if closeCache != nil {
		defer closeCache()
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. ВНЕШНИЕ СЕРВИСЫ
	// ─────────────────────────────────────────────────────────────────────────
	var quoteProvider query.QuoteProvider
	if cfg.Quotes.BaseURL != "" {
		qc := quotes.DefaultClientConfig(cfg.Quotes.BaseURL)
		qc.Timeout = cfg.Quotes.RequestTimeout
		qc.RetryConfig.MaxAttempts = cfg.Quotes.MaxRetries
		qc.CircuitBreakerConfig = circuitbreaker.Config{
			Name:             "quote-api",
			FailureThreshold: cfg.Quotes.CircuitBreakerThreshold,
			SuccessThreshold: 1,
			Timeout:          cfg.Quotes.CircuitBreakerTimeout,
		}
		qc.Logger = log
		quoteProvider = quotes.NewClient(qc)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. СБОРКА APPLICATION LAYER
	// ─────────────────────────────────────────────────────────────────────────
	ranker := leaderboard.NewRanker()
	handlers := cli.Handlers{
		RegisterUser:   command.NewRegisterUserHandler(repos.users, log),
		Login:          command.NewLoginHandler(repos.users, boardCache, log),
		StartSession:   command.NewStartSessionHandler(repos.users, repos.sessions, log),
		EndSession:     command.NewEndSessionHandler(repos.users, repos.sessions, boardCache, log),
		CreateGroup:    command.NewCreateGroupHandler(repos.users, repos.groups, log),
		JoinGroup:      command.NewJoinGroupHandler(repos.users, repos.groups, log),
		SetReminder:    command.NewSetReminderHandler(repos.users, repos.reminders, log),
		DeleteReminder: command.NewDeleteReminderHandler(repos.reminders, log),

		GetLeaderboard:    query.NewGetLeaderboardHandler(repos.users, ranker, boardCache, log),
		GetProgressReport: query.NewGetProgressReportHandler(repos.users, repos.sessions, quoteProvider, log),
		ListSessions:      query.NewListSessionsHandler(repos.sessions),
		ListGroups:        query.NewListGroupsHandler(repos.groups),
		ListReminders:     query.NewListRemindersHandler(repos.reminders),
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 7. ФОНОВЫЕ ЗАДАЧИ
	// ─────────────────────────────────────────────────────────────────────────
	if cfg.Scheduler.Enabled {
		sched := scheduler.NewScheduler(log)
		if err := sched.Register(
			jobs.NewReminderScanJob(repos.reminders, log),
			scheduler.Every(cfg.Scheduler.ReminderScanInterval),
		); err != nil {
			return err
		}
		if boardCache != nil {
			if err := sched.Register(
				jobs.NewRefreshLeaderboardJob(repos.users, ranker, boardCache, log),
				scheduler.Every(cfg.Scheduler.RefreshLeaderboardInterval),
			); err != nil {
				return err
			}
		}
		if err := sched.Start(ctx); err != nil {
			return err
		}
		defer sched.Stop()
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 8. ЗАПУСК ИНТЕРФЕЙСА
	// ─────────────────────────────────────────────────────────────────────────
	app := cli.NewApp(handlers, os.Stdin, os.Stdout, log)
	return app.Run(ctx)
}

func setupLogger(cfg *config.Config) *logger.Logger {
	level := logger.ParseLevel(cfg.Observability.LogLevel)
	if cfg.App.Debug {
		level = logger.LevelDebug
	}
	format := logger.FormatText
	if cfg.Observability.LogFormat == "json" {
		format = logger.FormatJSON
	}
	return logger.New(os.Stderr, level, format)
}

func setupStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (repositories, func(), error) {
	if cfg.Database.Disabled {
		log.Warn("no DATABASE_URL configured, using in-memory storage", nil)
		store := memory.NewStore()
		return repositories{
			users:     store.Users(),
			sessions:  store.Sessions(),
			groups:    store.Groups(),
			reminders: store.Reminders(),
		}, func() {}, nil
	}

	conn, err := postgres.NewConnection(ctx, cfg.Database.URL)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Database.Migrate {
		if err := postgres.NewMigrator(conn).Migrate(ctx); err != nil {
			conn.Close()
			return repositories{}, nil, err
		}
		log.Info("database migrations applied", nil)
	}

	return repositories{
		users:     postgres.NewUserRepository(conn),
		sessions:  postgres.NewSessionRepository(conn),
		groups:    postgres.NewGroupRepository(conn),
		reminders: postgres.NewReminderRepository(conn),
	}, conn.Close, nil
}

// setupBoardCache returns a nil cache when Redis is disabled or
// unreachable. The application treats a nil cache as "recompute every
// time".
func setupBoardCache(cfg *config.Config, log *logger.Logger) (leaderboard.Cache, func()) {
	if cfg.Redis.Disabled {
		return nil, nil
	}

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
		log.Warn("redis unavailable, leaderboard caching disabled", logger.Fields{"error": err.Error()})
		return nil, nil
	}

	log.Info("redis connected", logger.Fields{"addr": fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)})
	return redis.NewBoardCache(cache), func() { _ = cache.Close() }
}
