package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recruiter-backend/config"
	_ "recruiter-backend/docs" // Important for Swagger
	v1 "recruiter-backend/internal/delivery/http/v1"
	"recruiter-backend/internal/notification"
	"recruiter-backend/internal/repository/postgres"
	"recruiter-backend/internal/usecase"
	"recruiter-backend/pkg/database"
	"recruiter-backend/pkg/email"
	"recruiter-backend/pkg/logger"
	"recruiter-backend/pkg/redis"

	"github.com/go-playground/validator/v10"
)

// @title           Recruiter Backend API
// @version         1.0
// @description     Recruiting platform backend: candidates, jobs, applications and interview workflow.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting recruiter backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional - reminders and rate limits degrade without it)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(cfg.RedisURL); err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory fallbacks", "error", err)
		}
	}
	defer redis.Close()

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	matchRepo := postgres.NewMatchRepository(dbPool)
	interviewRepo := postgres.NewInterviewRepository(dbPool)

	// 6. Setup Mailer and Notification Workers
	mailer := email.NewMailer(cfg)
	if !mailer.IsConfigured() {
		logger.Log.Warn("Mailer not fully configured - reminder emails will be unavailable")
	}

	events, err := notification.NewEventLog()
	if err != nil {
		logger.Log.Error("Failed to set up notification event log", "error", err)
		os.Exit(1)
	}
	defer events.Sync()

	queue := notification.NewReminderQueue(redis.Client(), events)
	dispatcher := notification.NewDispatcher(queue, interviewRepo, mailer, events, cfg.ReminderPoll)
	sweeper := notification.NewSweeper(interviewRepo, events,
		time.Duration(cfg.RetentionDays)*24*time.Hour, cfg.RetentionInterval)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	go dispatcher.Run(workerCtx)
	go sweeper.Run(workerCtx)

	// 7. Setup UseCases
	validate := validator.New()
	authUC := usecase.NewAuthUsecase(userRepo)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, validate)
	jobUC := usecase.NewJobUsecase(jobRepo, validate)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo)
	matchUC := usecase.NewMatchUsecase(matchRepo)
	interviewUC := usecase.NewInterviewUsecase(interviewRepo, jobRepo, validate, queue, dispatcher, cfg.ReminderLead)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		CandidateUC:   candidateUC,
		JobUC:         jobUC,
		ApplicationUC: applicationUC,
		MatchUC:       matchUC,
		InterviewUC:   interviewUC,
		Config:        cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	stopWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
