package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/homescope/homescope/internal/clients"
	"github.com/homescope/homescope/internal/handlers"
	"github.com/homescope/homescope/internal/middleware"
	"github.com/homescope/homescope/internal/repositories"
	"github.com/homescope/homescope/internal/secrets"
	"github.com/homescope/homescope/internal/services"
	"github.com/homescope/homescope/internal/workers"
	"github.com/homescope/homescope/pkg/config"
	"github.com/homescope/homescope/pkg/database"
	"github.com/homescope/homescope/pkg/logger"
	"github.com/homescope/homescope/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	logger.Init()

	// Load configuration
	if err := config.Load(); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	gin.SetMode(config.AppConfig.Server.Mode)

	// Initialize database
	if err := database.Init(config.AppConfig.Database.Path); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	appMetrics := metrics.NewMetrics(nil)

	// API key store and secrets registry
	registry := secrets.NewProcessEnv()
	apiKeyRepo := repositories.NewAPIKeyRepository(config.AppConfig.Keys.Path)
	apiKeyService := services.NewAPIKeyService(apiKeyRepo, registry)
	apiKeyService.MaterializeEnvironment()

	// Property catalog and market statistics
	propertyRepo := repositories.NewPropertyRepository(database.DB)
	snapshotRepo := repositories.NewMarketSnapshotRepository(database.DB)
	propertyService := services.NewPropertyService(propertyRepo)
	marketStatsService := services.NewMarketStatsService(propertyRepo, snapshotRepo)
	mortgageService := services.NewMortgageService()
	exportService := services.NewExportService(propertyService)

	if err := propertyService.SeedIfEmpty(); err != nil {
		logger.Fatalf("Failed to seed properties: %v", err)
	}

	// AI market reports
	perplexityClient := clients.NewPerplexityClient(
		config.AppConfig.Perplexity.BaseURL,
		config.AppConfig.Perplexity.Model,
	)
	marketReportService := services.NewMarketReportService(
		marketStatsService, propertyService, perplexityClient, registry,
		config.AppConfig.Perplexity.Model,
	)

	// Initialize router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.HTTPMetrics(appMetrics))
	router.Use(middleware.CORS(config.AppConfig.Client.URL))

	setupRoutes(router, apiKeyService, propertyService, exportService, mortgageService, marketStatsService, marketReportService)

	// Start snapshot worker
	statsWorker := workers.NewMarketStatsWorker(marketStatsService, 1*time.Hour)
	statsWorker.Start()
	defer statsWorker.Stop()

	// Setup server
	server := &http.Server{
		Addr:         ":" + config.AppConfig.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(config.AppConfig.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(config.AppConfig.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Infof("Server starting on :%s", config.AppConfig.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	logger.Info("Server stopped")
}

func setupRoutes(
	router *gin.Engine,
	apiKeyService *services.APIKeyService,
	propertyService *services.PropertyService,
	exportService *services.ExportService,
	mortgageService *services.MortgageService,
	marketStatsService *services.MarketStatsService,
	marketReportService *services.MarketReportService,
) {
	// Initialize handlers
	apiKeyHandler := handlers.NewAPIKeyHandler(apiKeyService)
	propertyHandler := handlers.NewPropertyHandler(propertyService, exportService)
	mortgageHandler := handlers.NewMortgageHandler(mortgageService)
	marketHandler := handlers.NewMarketHandler(marketStatsService, marketReportService)
	healthHandler := handlers.NewHealthHandler()

	api := router.Group("/api")
	{
		api.POST("/keys", apiKeyHandler.CreateKey)
		api.GET("/keys", apiKeyHandler.ListKeys)
		api.DELETE("/keys/:identifier", apiKeyHandler.DeleteKey)

		api.GET("/properties", propertyHandler.ListProperties)
		api.GET("/properties/export", propertyHandler.ExportComparison)
		api.GET("/properties/:id", propertyHandler.GetProperty)

		api.POST("/mortgage/calculate", mortgageHandler.Calculate)

		api.GET("/market", marketHandler.ListSnapshots)
		api.GET("/market/:city", marketHandler.GetSnapshot)
		api.POST("/market/:city/report", marketHandler.GenerateReport)
	}

	// Health check and metrics endpoints
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
