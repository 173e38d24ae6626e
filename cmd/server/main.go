package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"heybabyy/internal/config"
	"heybabyy/internal/database"
	"heybabyy/internal/handlers"
	"heybabyy/internal/logging"
	"heybabyy/internal/nutrition"
	"heybabyy/internal/repository"
	"heybabyy/internal/security"
	"heybabyy/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitializeWithConfig(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established", zap.String("type", cfg.Database.Type))

	if err := db.RunMigrations(database.MigrationSource(cfg.Database.MigrationsPath), logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	childRepo := repository.NewChildRepository(db)
	growthRepo := repository.NewGrowthRepository(db)
	logRepo := repository.NewDailyLogRepository(db)

	// Initialize services
	emailService, err := service.NewEmailService(context.Background(), cfg.Email, logger)
	if err != nil {
		logger.Fatal("Failed to initialize email service", zap.Error(err))
	}
	childService := service.NewChildService(childRepo, logger)
	growthService := service.NewGrowthService(childService, growthRepo, logger)
	nutritionService := service.NewNutritionService(db, childService, logRepo,
		nutrition.NewEntryFactory(nil, nil), emailService, logger)

	limiter := security.NewRateLimiter(cfg.Server.RateLimitPerMinute, time.Minute)
	defer limiter.Stop()

	router := handlers.NewRouter(handlers.NewHandler(childService, growthService, nutritionService, logger), limiter)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
}
