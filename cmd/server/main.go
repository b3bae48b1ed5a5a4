package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/skillbase/skillbase-backend/internal/config"
	"github.com/skillbase/skillbase-backend/internal/database"
	"github.com/skillbase/skillbase-backend/internal/handler"
	"github.com/skillbase/skillbase-backend/internal/logger"
	"github.com/skillbase/skillbase-backend/internal/middleware"
	"github.com/skillbase/skillbase-backend/internal/repository"
	"github.com/skillbase/skillbase-backend/internal/router"
	"github.com/skillbase/skillbase-backend/internal/service"
	"github.com/skillbase/skillbase-backend/internal/validator"
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
		Msg("Starting SkillBase Backend")

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

	// ─── Initialize Repositories ───────────────────────────────────────
	subjectRepo := repository.NewSubjectRepository(pool)
	topicRepo := repository.NewTopicRepository(pool)
	quizRepo := repository.NewQuizRepository(pool)
	assignmentRepo := repository.NewAssignmentRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	productRepo := repository.NewProductRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	cacheTTL := time.Duration(cfg.SubjectCacheTTLSeconds) * time.Second
	subjectService := service.NewSubjectService(subjectRepo, topicRepo, quizRepo, assignmentRepo, rdb, cacheTTL, log)
	topicService := service.NewTopicService(topicRepo, subjectService, log)
	quizService := service.NewQuizService(quizRepo, subjectService, log)
	assignmentService := service.NewAssignmentService(assignmentRepo, userRepo, subjectService, log)
	userService := service.NewUserService(userRepo, cfg.BcryptCost, log)
	customerService := service.NewCustomerService(customerRepo)
	productService := service.NewProductService(productRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Subject:    handler.NewSubjectHandler(subjectService),
		Topic:      handler.NewTopicHandler(topicService),
		Quiz:       handler.NewQuizHandler(quizService),
		Assignment: handler.NewAssignmentHandler(assignmentService),
		User:       handler.NewUserHandler(userService),
		Customer:   handler.NewCustomerHandler(customerService),
		Product:    handler.NewProductHandler(productService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitPerMinute > 0 {
		rateLimiter = middleware.NewRateLimiter(rdb, cfg.RateLimitPerMinute, time.Minute, log)
	}
	r := router.SetupRouter(handlers, rateLimiter, cfg)

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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
