package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-backend/config"
	v1 "portfolio-backend/internal/delivery/http/v1"
	"portfolio-backend/internal/repository/postgres"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/database"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/mailer"
	"portfolio-backend/pkg/taskqueue"

	"github.com/go-playground/validator/v10"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting portfolio backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := postgres.InitSchema(context.Background(), dbPool); err != nil {
		logger.Log.Error("Failed to initialize schema", "error", err)
		os.Exit(1)
	}

	// 4. Setup Repositories
	messageRepo := postgres.NewMessageRepository(dbPool)
	projectRepo := postgres.NewProjectRepository(dbPool)
	postRepo := postgres.NewPostRepository(dbPool)

	// 5. Setup Mailer + Task Queue
	mail := mailer.New(cfg)
	if !mail.IsConfigured() {
		logger.Log.Warn("Mailer not fully configured - contact notifications will be logged and dropped")
	}
	tasks := taskqueue.New(logger.Log, 2, 64)

	// 6. Setup UseCases
	validate := validator.New()
	contactUC := usecase.NewContactUsecase(messageRepo, mail, tasks, cfg, validate)
	projectUC := usecase.NewProjectUsecase(projectRepo)
	postUC := usecase.NewPostUsecase(postRepo)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		ProjectUC: projectUC,
		PostUC:    postUC,
		Config:    cfg,
	})

	// 8. Start Server
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	// Drain pending notification tasks before releasing the database pool.
	tasks.Close()

	logger.Log.Info("Server exiting")
}
