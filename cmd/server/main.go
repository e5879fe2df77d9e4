package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/formforge/form-service/internal/cache"
	"github.com/formforge/form-service/internal/config"
	"github.com/formforge/form-service/internal/handlers"
	"github.com/formforge/form-service/internal/models"
	"github.com/formforge/form-service/internal/repositories/postgres"
	"github.com/formforge/form-service/internal/services"
	"github.com/formforge/form-service/internal/storage"
	"github.com/formforge/form-service/internal/utils"
	"github.com/formforge/form-service/internal/validator"
	"github.com/formforge/form-service/pkg"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	var logger utils.Logger
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		logger = utils.NewDefaultLogger()
	} else {
		logger = utils.NewDevelopmentLogger()
	}
	slogLogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(&models.Form{}, &models.FormResponse{}); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Redis is optional; without it form reads skip the cache.
	cacheService := cache.NewNoopCache()
	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, caching disabled", "error", err)
	} else {
		cacheService = cache.NewRedisCache(redisClient, slogLogger)
		defer redisClient.Close()
	}

	publisher, err := cfg.Events.CreateEventPublisher(slogLogger)
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	blobStore, err := storage.NewLocalDiskStore(cfg.UploadDir, cfg.PublicBaseURL, slogLogger)
	if err != nil {
		logger.Error("Failed to initialize upload storage", "error", err)
		os.Exit(1)
	}

	formRepo := postgres.NewFormPostgreSQL(db)
	responseRepo := postgres.NewResponsePostgreSQL(db)

	v := validator.New()

	serviceManager := services.NewServiceManager(
		services.NewFormService(formRepo, cacheService, publisher, v, slogLogger),
		services.NewResponseService(formRepo, responseRepo, publisher, v, slogLogger),
		services.NewUploadService(blobStore, slogLogger),
		services.NewExportService(formRepo, responseRepo, slogLogger),
	)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(serviceManager, logger)
	handlerManager.SetupRoutes(router, cfg.UploadDir)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting form service", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
}
