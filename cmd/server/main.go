package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/config"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/database"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/handlers"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/logger"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/metrics"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/middleware"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/repository"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/services"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/tax"
)

const (
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env)
	log.Info("Starting calculation API", map[string]interface{}{
		"version":     "0.1.0",
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
		"tax_year":    cfg.Tax.Year,
	})

	// Create database connection pool
	ctx := context.Background()
	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", err, map[string]interface{}{
			"host": cfg.Database.Host,
			"port": cfg.Database.Port,
			"name": cfg.Database.Name,
		})
	}
	defer db.Close()

	log.Info("Database connection established", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Name,
		"pool_min": cfg.Database.PoolMin,
		"pool_max": cfg.Database.PoolMax,
	})

	// Tax calculator is built once at startup; an unsupported year or
	// church tax rate is a configuration error, not a request error.
	taxCalc, err := tax.NewCalculator(tax.Params{
		Year:                 cfg.Tax.Year,
		ChurchTaxRatePercent: cfg.Tax.ChurchTaxRatePercent,
	})
	if err != nil {
		log.Fatal("Failed to initialize tax calculator", err, map[string]interface{}{
			"tax_year":                cfg.Tax.Year,
			"church_tax_rate_percent": cfg.Tax.ChurchTaxRatePercent,
		})
	}

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))

	// Register health check and metrics routes
	healthHandler := handlers.NewHealthHandler(db, cfg.Server.Env)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/api/v1/info", healthHandler.Info)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Initialize repository and service layers
	m := metrics.New()
	costItemRepo := repository.NewCostItemRepository(db)
	sidecarRepo := repository.NewSidecarRepository(db)

	taxService := services.NewTaxService(taxCalc, log, m)
	investmentService := services.NewInvestmentService(log, m)
	costService := services.NewCostService(costItemRepo, log, m)
	documentService := services.NewDocumentService(sidecarRepo, log, m)

	// Initialize handlers
	calculationHandler := handlers.NewCalculationHandler(taxService, investmentService)
	costHandler := handlers.NewCostHandler(costService)
	documentHandler := handlers.NewDocumentHandler(documentService)

	// Register API v1 routes
	v1 := router.Group("/api/v1")
	{
		calculations := v1.Group("/calculations")
		{
			calculations.POST("/income-tax", calculationHandler.IncomeTax)
			calculations.POST("/investment", calculationHandler.Investment)
		}

		// Data routes operate on tenant-owned records and require the
		// X-Tenant-ID header.
		statements := v1.Group("/statements", middleware.RequireTenant())
		{
			statements.GET("/:id/cost-items", costHandler.CostItems)
		}

		documents := v1.Group("/documents", middleware.RequireTenant())
		{
			documents.POST("/:id/sidecars", documentHandler.Ingest)
			documents.GET("/:id/sidecar", documentHandler.Latest)
			documents.GET("/review-queue", documentHandler.ReviewQueue)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}
