package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"smartMarket/app/echo-server/router"
	"smartMarket/business/catalog"
	"smartMarket/business/comparison"
	"smartMarket/business/dashboard"
	"smartMarket/business/recommendation"
	"smartMarket/business/reports"
	userService "smartMarket/business/user"
	"smartMarket/internal/middleware"
	"smartMarket/internal/repository/aiengine"
	psqlRepo "smartMarket/internal/repository/postgres"
	redisRepo "smartMarket/internal/repository/redis"
	"smartMarket/internal/rest"
	"smartMarket/pkg/config"
	"smartMarket/pkg/database"
	redisdb "smartMarket/pkg/database/redis"
	"smartMarket/pkg/logger"
	"smartMarket/pkg/metrics"
	"smartMarket/pkg/utils"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
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
	logger.Info("Starting SmartMarket", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}
	defer redisdb.CloseRedisClient(redisClient)

	logger.Info("Redis connected successfully")

	// AI engine client
	aiEngineRepo := aiengine.NewAIEngineRepository(aiengine.AIEngineConfig{
		BaseUrl:           cfg.AIEngine.BaseUrl,
		BasicAuthUsername: cfg.AIEngine.BasicAuthUsername,
		BasicAuthPassword: cfg.AIEngine.BasicAuthPassword,
	})

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)
	storeRepo := psqlRepo.NewStoreRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)
	brandRepo := psqlRepo.NewBrandRepository(db)
	comparisonRepo := psqlRepo.NewComparisonRepository(db)
	recoRepo := psqlRepo.NewRecommendationRepository(db)
	reportRepo := psqlRepo.NewReportRepository(db)
	analyticsRepo := psqlRepo.NewAnalyticsRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(redisClient)
	recoCache := redisRepo.NewRecommendationCache(redisClient)

	// Init service
	userSvc := userService.NewUserService(userRepo, tokenRepo, validate)
	catalogSvc := catalog.NewCatalogService(aiEngineRepo, aiEngineRepo, productRepo, storeRepo, categoryRepo, brandRepo)
	comparisonSvc := comparison.NewComparisonService(aiEngineRepo, comparisonRepo, productRepo, storeRepo)
	recoSvc := recommendation.NewRecommendationService(aiEngineRepo, recoRepo, recoCache)
	reportSvc := reports.NewReportService(aiEngineRepo, reportRepo)
	dashboardSvc := dashboard.NewDashboardService(analyticsRepo, storeRepo)

	// Init handler
	userHandler := rest.NewUserHandler(userSvc)
	productHandler := rest.NewProductHandler(catalogSvc)
	comparisonHandler := rest.NewComparisonHandler(comparisonSvc)
	recoHandler := rest.NewRecommendationHandler(recoSvc)
	reportHandler := rest.NewReportHandler(reportSvc)
	dashboardHandler := rest.NewDashboardHandler(dashboardSvc)

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
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware
	authRequired := middleware.AuthMiddleware()
	optionalAuth := middleware.OptionalAuthMiddleware()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired)
	router.SetupProductRoutes(api, productHandler, authRequired, optionalAuth)
	router.SetComparisonRoutes(api, comparisonHandler, authRequired, optionalAuth)
	router.SetRecommendationRoutes(api, recoHandler, authRequired, optionalAuth)
	router.SetReportRoutes(api, reportHandler, authRequired)
	router.SetDashboardRoutes(api, dashboardHandler, authRequired)

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
