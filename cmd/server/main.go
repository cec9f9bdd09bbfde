// @title                       Task Manager API
// @version                     1.0
// @description                 Per-user task management with token authentication.
// @BasePath                    /
// @securityDefinitions.apikey  TokenAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/99minutos/task-manager/internal/api"
	"github.com/99minutos/task-manager/internal/api/handler"
	"github.com/99minutos/task-manager/internal/core/service"
	"github.com/99minutos/task-manager/internal/infrastructure/auth"
	"github.com/99minutos/task-manager/internal/infrastructure/db/mongo"
	"github.com/99minutos/task-manager/internal/infrastructure/db/redis"
	"github.com/99minutos/task-manager/internal/infrastructure/notify"
	"github.com/99minutos/task-manager/internal/infrastructure/queue"
	"github.com/99minutos/task-manager/internal/infrastructure/scheduler"
	"github.com/99minutos/task-manager/internal/pkg/config"
	"github.com/99minutos/task-manager/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "task-manager: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:     cfg.LogLevel,
		Pretty:    cfg.IsDevelopment(),
		ErrorFile: cfg.LogFile,
	})
	defer logger.Close()

	// --- Storage ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "task-manager",
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	userRepo := mongo.NewUserRepository(db)
	taskRepo := mongo.NewTaskRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	if err := taskRepo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("task indexes: %w", err)
	}

	// --- Core ---
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	log.Info().Int("bcrypt_cost", hasher.Cost()).Dur("token_ttl", cfg.Auth.TokenTTL).Msg("auth configured")

	authService := service.NewAuthService(userRepo, hasher, tokens, component("auth"))
	taskService := service.NewTaskService(
		taskRepo,
		redis.NewIdempotencyStore(rdb),
		cfg.Tasks.EnforceOwnership,
		component("tasks"),
	)
	if !cfg.Tasks.EnforceOwnership {
		log.Warn().Msg("task ownership enforcement disabled: updates and deletes are scoped by id only")
	}

	// --- Reminders ---
	reminderService := service.NewReminderService(
		taskRepo,
		notify.NewLogNotifier(component("notifier")),
		cfg.Reminder.BatchSize,
		component("reminders"),
	)
	dispatcher := queue.NewDispatcher(cfg.Reminder.Workers, reminderService, component("dispatcher"))
	dispatcher.Start(ctx)

	reminderScheduler, err := scheduler.New(cfg.Reminder.Schedule, reminderService, dispatcher, component("scheduler"))
	if err != nil {
		return err
	}
	if !reminderScheduler.Enabled() {
		log.Warn().Msg("REMINDER_SCHEDULE is empty: due reminders will not be delivered")
	}
	if err := reminderScheduler.Start(ctx); err != nil {
		return err
	}

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		AuthService: authService,
		TaskService: taskService,
		Tokens:      tokens,
		ReadinessChecks: map[string]handler.Check{
			"mongodb": func(ctx context.Context) error {
				if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
					return err
				}
				return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
			},
			"redis": func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			},
		},
		Logger: component("http"),
	})

	srvErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("task manager listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
		close(srvErr)
	}()

	select {
	case err := <-srvErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	stop()

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(sctx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	log.Info().Msg("server exiting")
	return nil
}

func component(name string) zerolog.Logger {
	return logger.Get().With().Str("component", name).Logger()
}
