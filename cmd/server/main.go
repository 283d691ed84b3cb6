package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kashafa/tadreeb-backend/internal/catalog"
	"github.com/kashafa/tadreeb-backend/internal/config"
	"github.com/kashafa/tadreeb-backend/internal/database"
	"github.com/kashafa/tadreeb-backend/internal/handler"
	"github.com/kashafa/tadreeb-backend/internal/logger"
	"github.com/kashafa/tadreeb-backend/internal/repository"
	"github.com/kashafa/tadreeb-backend/internal/router"
	"github.com/kashafa/tadreeb-backend/internal/service"
	"github.com/kashafa/tadreeb-backend/internal/validator"
	"github.com/kashafa/tadreeb-backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Tadreeb Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Static Reference Data ─────────────────────────────────────────
	track := catalog.Default()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	settingRepo := repository.NewSettingRepository(pool)
	sessionStore := repository.NewExamSessionStore(rdb)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg)
	userService := service.NewUserService(userRepo, rdb, log)
	progressService := service.NewProgressService(userRepo, userService, rdb, log)
	settingService := service.NewSettingService(settingRepo, rdb, log)
	scheduleService := service.NewScheduleService(settingService, rdb, log)
	sessionService := service.NewExamSessionService(sessionStore, scheduleService, progressService, track, log)

	// Load the exam window BEFORE accepting traffic; until the first
	// successful load exams read as closed.
	if err := scheduleService.Reload(ctx); err != nil {
		log.Warn().Err(err).Msg("Initial schedule load failed, exams stay closed")
	}

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:     handler.NewAuthHandler(authService, userService),
		User:     handler.NewUserHandler(userService, progressService),
		Course:   handler.NewCourseHandler(track, userService),
		Exam:     handler.NewExamHandler(sessionService, track),
		Schedule: handler.NewScheduleHandler(scheduleService, settingService),
		Setting:  handler.NewSettingHandler(settingService),
		WS:       handler.NewWSHandler(scheduleService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	autoSubmitWorker := worker.NewAutoSubmitWorker(sessionService, sessionStore, log)
	progressWorker := worker.NewProgressWorker(progressService, rdb, log)

	go scheduleService.Run(workerCtx)
	go autoSubmitWorker.Start(workerCtx)
	go progressWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for queues to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
