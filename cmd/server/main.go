package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerylCAtieno/opticours-api/internal/analyzer"
	"github.com/BerylCAtieno/opticours-api/internal/auth"
	"github.com/BerylCAtieno/opticours-api/internal/config"
	"github.com/BerylCAtieno/opticours-api/internal/db"
	"github.com/BerylCAtieno/opticours-api/internal/delivery"
	"github.com/BerylCAtieno/opticours-api/internal/latency"
	"github.com/BerylCAtieno/opticours-api/internal/repository"
	"github.com/BerylCAtieno/opticours-api/internal/router"
	"github.com/BerylCAtieno/opticours-api/internal/services"
	"github.com/BerylCAtieno/opticours-api/internal/storage"
	"github.com/BerylCAtieno/opticours-api/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := utils.NewLogger(cfg.LogLevel)

	// Initialize database (migrations run first)
	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("Failed to open database", "error", err, "path", cfg.DatabasePath)
	}
	defer database.Close()

	// Initialize blob storage
	store, err := storage.New(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err, "backend", cfg.StorageBackend)
	}

	wait := latency.Scaled(latency.Timer, cfg.LatencyScale)

	// Repositories
	accountRepo := repository.NewAccountRepository(database)
	sessionRepo := repository.NewSessionRepository(database)
	fileRepo := repository.NewFileRepository(database)
	analysisRepo := repository.NewAnalysisRepository(database)

	// Services
	svc := router.Services{
		Sessions: services.NewSessionService(accountRepo, sessionRepo, auth.NewTokenIssuer(cfg.JWTSecret), logger.With("component", "sessions")),
		Files: services.NewFileService(fileRepo, store, services.FileOptions{
			MaxFileSize:  cfg.MaxFileSize,
			PreviewChars: cfg.PreviewChars,
		}, logger.With("component", "files")),
		Analysis: services.NewAnalysisService(fileRepo, analysisRepo, analyzer.NewScriptedAnalyzer(analyzer.WithLatency(wait)), logger.With("component", "analysis")),
		Delivery: services.NewDeliveryService(analysisRepo, delivery.NewSimulatedDeliverer(wait), logger.With("component", "delivery")),
	}

	// Setup HTTP router
	handler := router.NewRouter(svc, cfg.MaxFileSize, logger)

	// The artifact fan-out can take a few seconds per request.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "storage", cfg.StorageBackend, "latency_scale", cfg.LatencyScale)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
