package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobprep/internal/config"
	"jobprep/internal/events"
	"jobprep/internal/handlers"
	appmiddleware "jobprep/internal/middleware"
	"jobprep/internal/metrics"
	"jobprep/internal/repositories"
	"jobprep/internal/routers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	// Schema is managed by external migrations; the service only connects.
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	userRepo := &repositories.UserRepository{DB: db}
	problemRepo := &repositories.ProblemRepository{DB: db}
	tagRepo := &repositories.TagRepository{DB: db}
	companyRepo := &repositories.CompanyRepository{DB: db}
	statusRepo := &repositories.StatusRepository{DB: db}

	var publisher *events.Publisher
	if cfg.RedisAddr != "" {
		publisher = events.NewPublisher(cfg.RedisAddr, logger)
		defer publisher.Close()
	}

	problemHandler := &handlers.ProblemHandler{
		Repo:      problemRepo,
		Users:     userRepo,
		Publisher: publisher,
		PageSize:  cfg.PageSize,
	}
	tagHandler := &handlers.TagHandler{Repo: tagRepo, PageSize: cfg.PageSize}
	companyHandler := &handlers.CompanyHandler{Repo: companyRepo, PageSize: cfg.PageSize}
	statusHandler := &handlers.StatusHandler{Repo: statusRepo, PageSize: cfg.PageSize}
	userHandler := &handlers.UserHandler{Repo: userRepo, PageSize: cfg.PageSize}

	router := chi.NewRouter()
	router.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer, middleware.Timeout(60*time.Second))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	router.Use(metrics.Middleware)
	router.Use(appmiddleware.Auth(userRepo, cfg.JWTSecret))

	routers.HealthRoutes(router, db)
	routers.ProblemRoutes(router, problemHandler)
	routers.TagRoutes(router, tagHandler)
	routers.CompanyRoutes(router, companyHandler)
	routers.StatusRoutes(router, statusHandler)
	routers.UserRoutes(router, userHandler)

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("jobprep service starting", zap.String("addr", cfg.ListenAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("jobprep service shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("jobprep service exited")
}
