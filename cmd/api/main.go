package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/vakildesk/vakildesk-api/api/swagger"
	"github.com/vakildesk/vakildesk-api/internal/gateway"
	"github.com/vakildesk/vakildesk-api/internal/handler"
	"github.com/vakildesk/vakildesk-api/internal/middleware"
	"github.com/vakildesk/vakildesk-api/internal/repository"
	"github.com/vakildesk/vakildesk-api/internal/service"
	"github.com/vakildesk/vakildesk-api/pkg/cache"
	"github.com/vakildesk/vakildesk-api/pkg/config"
	"github.com/vakildesk/vakildesk-api/pkg/database"
	"github.com/vakildesk/vakildesk-api/pkg/jobs"
	"github.com/vakildesk/vakildesk-api/pkg/logger"
	corsmiddleware "github.com/vakildesk/vakildesk-api/pkg/middleware/cors"
	reqidmiddleware "github.com/vakildesk/vakildesk-api/pkg/middleware/requestid"
	"github.com/vakildesk/vakildesk-api/pkg/storage"
)

// @title VakilDesk API
// @version 1.0.0
// @description Case management for legal practitioners
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if redisClient, redisErr := cache.NewRedis(cfg.Redis); redisErr != nil {
		logr.Sugar().Warnw("redis unavailable, prediction cache disabled", "error", redisErr)
	} else {
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Advisor.PredictionCacheTTL, logr, true)
	}

	fileStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init export storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)

	caseStore := repository.NewCaseStore(db, logr)
	caseSvc := service.NewCaseService(caseStore, logr)
	caseSvc.AttachMetrics(metricsSvc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := caseStore.EnsureSchema(ctx); err != nil {
		logr.Sugar().Fatalw("failed to prepare storage schema", "error", err)
	}
	if err := caseSvc.Init(ctx); err != nil {
		logr.Sugar().Fatalw("failed to load case collection", "error", err)
	}

	modelClient := gateway.NewClient(cfg.Advisor, logr)
	advisorSvc := service.NewAdvisorService(modelClient, cacheSvc, cfg.Advisor.PredictionCacheTTL, logr)
	authSvc := service.NewAuthService(nil, logr, cfg.Auth)
	dataSvc := service.NewDataService(caseSvc, fileStore, signer, cfg.APIPrefix, logr)
	draftSvc := service.NewDraftService(fileStore, signer, nil, cfg.APIPrefix, logr)
	documentSvc := service.NewDocumentService(cfg.Review.MaxFileSizeBytes)

	cleanupQueue := jobs.NewQueue("export-cleanup", func(ctx context.Context, job jobs.Job) error {
		_, err := dataSvc.CleanupExpired(cfg.Exports.SignedURLTTL)
		return err
	}, jobs.QueueConfig{Workers: 1, Logger: logr})
	cleanupQueue.Start(ctx)
	defer cleanupQueue.Stop()

	go func() {
		ticker := time.NewTicker(cfg.Exports.CleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = cleanupQueue.Enqueue(jobs.Job{ID: uuid.NewString(), Type: "cleanup-expired-exports"})
			}
		}
	}()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	metricsHandler := handler.NewMetricsHandler(metricsSvc)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, handler.Handlers{
		Auth:    handler.NewAuthHandler(authSvc),
		Cases:   handler.NewCaseHandler(caseSvc),
		Advisor: handler.NewAdvisorHandler(advisorSvc, caseSvc, documentSvc, draftSvc),
		Data:    handler.NewDataHandler(dataSvc, cfg.Review.MaxFileSizeBytes*2),
		Metrics: metricsHandler,
	}, authSvc)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	stop, stopCancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopCancel()
	<-stop.Done()

	logr.Sugar().Infow("server shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown incomplete", "error", err)
	}
}
