package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"liverRisk/app/echo-server/metrics"
	"liverRisk/app/echo-server/router"
	"liverRisk/business/prediction"
	"liverRisk/internal/middleware"
	"liverRisk/internal/repository/bundle"
	psqlRepo "liverRisk/internal/repository/postgres"
	redisRepo "liverRisk/internal/repository/redis"
	sqliteRepo "liverRisk/internal/repository/sqlite"
	"liverRisk/internal/rest"
	"liverRisk/pkg/config"
	"liverRisk/pkg/database"
	redisdb "liverRisk/pkg/database/redis"
	"liverRisk/pkg/logger"
	pipelineMetrics "liverRisk/pkg/metrics"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting liver risk service", "version", cfg.App.Version)

	metrics.Init()
	pipelineMetrics.Init()

	// The bundle is a hard startup precondition.
	modelBundle, err := bundle.LoadFile(cfg.Model.Path)
	if err != nil {
		logger.Fatal("Failed to load model bundle", "path", cfg.Model.Path, "error", err)
	}
	logger.Info("Model, scaler, and selector loaded", "version", modelBundle.Version)

	opts := prediction.DefaultOptions()
	opts.Member = cfg.Model.ExplainMember
	opts.IncludeConfidence = cfg.Model.IncludeConfidence

	var audit auditStore
	if cfg.Database.AuditEnabled {
		audit, err = openAuditStore(cfg)
		if err != nil {
			logger.Fatal("Failed to open audit store", "driver", cfg.Database.AuditDriver, "error", err)
		}
		logger.Info("Audit store ready", "driver", cfg.Database.AuditDriver)
		opts.Audit = audit
		if closer, ok := audit.(io.Closer); ok {
			defer closer.Close()
		}
	}

	if cfg.Redis.CacheEnabled {
		client, err := redisdb.NewRedisClient(cfg.Redis, "liver-risk-api")
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "error", err)
		}
		defer func() {
			if err := redisdb.CloseRedisClient(client); err != nil {
				logger.Error("Failed to close Redis", err)
			}
		}()
		logger.Info("Redis connected successfully")
		opts.Cache = redisRepo.NewPredictionCache(client, cfg.Redis.CacheTTL)
	}

	// Init service
	predictionService, err := prediction.NewService(modelBundle, opts)
	if err != nil {
		logger.Fatal("Failed to build prediction service", "error", err)
	}

	// Init handler
	predictionHandler := rest.NewPredictionHandler(predictionService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger())
	e.Use(metrics.Middleware())
	e.Use(middleware.CORS(cfg.Cors.AllowOrigins))

	// Setup routes
	router.SetupPredictionRoutes(e.Group("/api"), predictionHandler)
	v1 := e.Group("/api/v1")
	router.SetupPredictionRoutes(v1, predictionHandler)
	if audit != nil {
		router.SetupAuditRoutes(v1, rest.NewAuditHandler(audit))
	}
	router.SetupMetricsRoutes(e)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}

type auditStore interface {
	prediction.AuditRepository
	rest.AuditReader
}

func openAuditStore(cfg *config.Config) (auditStore, error) {
	if cfg.Database.AuditDriver == "sqlite" {
		repo, err := sqliteRepo.Open(cfg.Database.SQLitePath)
		if err != nil {
			return nil, err
		}
		return repo, nil
	}
	db, err := database.InitPostgres(cfg)
	if err != nil {
		return nil, err
	}
	return psqlRepo.NewPredictionAuditRepository(db), nil
}
