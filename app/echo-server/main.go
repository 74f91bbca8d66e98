package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpmetrics "shopReco/app/echo-server/metrics"
	"shopReco/app/echo-server/router"
	authService "shopReco/business/auth"
	"shopReco/business/reco"
	sessionService "shopReco/business/session"
	"shopReco/domain"
	"shopReco/internal/artifacts"
	"shopReco/internal/middleware"
	"shopReco/internal/model"
	"shopReco/internal/repository/alert"
	psqlRepo "shopReco/internal/repository/postgres"
	redisRepo "shopReco/internal/repository/redis"
	"shopReco/internal/rest"
	"shopReco/pkg/config"
	"shopReco/pkg/database"
	redisdb "shopReco/pkg/database/redis"
	"shopReco/pkg/logger"
	"shopReco/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting ShopReco", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Init repo
	covisitRepo := psqlRepo.NewCovisitRepository(db)
	popularityRepo := psqlRepo.NewPopularityRepository(db)
	fallbackRepo := psqlRepo.NewFallbackRepository(db)
	sessionRepo := psqlRepo.NewSessionRepository(db)

	// Load the serving artifacts into memory up front; a server without
	// them has nothing to serve.
	loadCtx, loadCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	arts, err := artifacts.NewLoader(covisitRepo, popularityRepo, fallbackRepo).Load(loadCtx)
	if err != nil {
		logger.Fatal("Failed to load serving artifacts", "error", err)
	}
	if v, verr := psqlRepo.NewArtifactVersionRepository(db).Latest(loadCtx); verr == nil && v != nil {
		logger.Info("serving artifact version", "name", v.Name, "built_at", v.BuiltAt)
	}
	loadCancel()

	// Load the three scoring models, one per funnel type
	modelPaths := map[string]string{
		domain.EventClicks: cfg.Models.ClicksPath,
		domain.EventCarts:  cfg.Models.CartsPath,
		domain.EventOrders: cfg.Models.OrdersPath,
	}
	scorers := make(map[string]reco.Scorer, len(modelPaths))
	for _, eventType := range domain.EventTypes() {
		scorer, err := model.Load(modelPaths[eventType], cfg.Reco.NativeIterations)
		if err != nil {
			logger.Fatal("Failed to load scoring model",
				"event_type", eventType, "path", modelPaths[eventType], "error", err)
		}
		scorers[eventType] = scorer
		logger.Info("scoring model loaded", "event_type", eventType, "features", scorer.NumFeatures())
	}

	// Redis backs the response cache and revocable operator tokens; both
	// are optional.
	var (
		resultCache reco.ResultCache
		tokenStore  authService.TokenStore
	)
	if cfg.Redis.CacheEnabled {
		redisClient, err := redisdb.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to redis", "error", err)
		}
		defer redisdb.CloseRedisClient(redisClient)

		resultCache = redisRepo.NewRecoCache(redisClient, time.Duration(cfg.Redis.CacheTTLSecs)*time.Second)
		tokenStore = redisRepo.NewTokenRepository(redisClient)
		logger.Info("Redis connected successfully")
	}

	// Ops alerting on scoring failures
	alerter := alert.NewWebhookRepository(alert.WebhookConfig{
		WebhookURL:               cfg.Alert.WebhookURL,
		WebhookBasicAuthUsername: cfg.Alert.Username,
		WebhookBasicAuthPassword: cfg.Alert.Password,
		AlertsPerMinute:          cfg.Alert.PerMinute,
	})

	// Init service
	recoSvc, err := reco.NewRecoService(arts, scorers, resultCache, alerter, reco.Config{
		ItemsFromHistory:     cfg.Reco.ItemsFromHistory,
		CovisitsPerItem:      cfg.Reco.CovisitsPerItem,
		CandidatesPerSession: cfg.Reco.CandidatesPerSession,
		TopK:                 cfg.Reco.TopK,
		NativeIterations:     cfg.Reco.NativeIterations,
	})
	if err != nil {
		logger.Fatal("Failed to build recommendation service", "error", err)
	}
	sessionSvc := sessionService.NewSessionService(sessionRepo)
	authSvc := authService.NewAuthService(cfg.Auth.OperatorKeyHash, tokenStore)

	// Init handler
	recoHandler := rest.NewRecoHandler(recoSvc, sessionSvc)
	sessionHandler := rest.NewSessionHandler(sessionSvc)
	authHandler := rest.NewAuthHandler(authSvc)

	// Init metrics
	metrics.Init()
	httpmetrics.Init()

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.TraceMiddleware())
	e.Use(httpmetrics.Middleware())

	// Auth middleware: validate against redis when it is on, plain JWT
	// otherwise
	authRequired := middleware.AuthMiddleware()
	if tokenStore != nil {
		authRequired = middleware.AuthMiddlewareWithRedis(authSvc)
	}
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupAuthRoutes(api, authHandler, authRequired)
	router.SetupRecoRoutes(api, recoHandler, authRequired, adminOnly)
	router.SetupSessionRoutes(api, sessionHandler, authRequired)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

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
