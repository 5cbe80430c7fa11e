package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	appinv "github.com/warehousing/backend/internal/application/inventory"
	apporder "github.com/warehousing/backend/internal/application/order"
	apptransfer "github.com/warehousing/backend/internal/application/transfer"
	"github.com/warehousing/backend/internal/infrastructure/config"
	"github.com/warehousing/backend/internal/infrastructure/logger"
	"github.com/warehousing/backend/internal/infrastructure/persistence"
	"github.com/warehousing/backend/internal/interfaces/http/handler"
	"github.com/warehousing/backend/internal/interfaces/http/middleware"
	"github.com/warehousing/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting warehouse backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories and the transactional scope. Mutations run inside the
	// scope so a serialization failure retries the whole transaction.
	recordRepo := persistence.NewGormInventoryRecordRepository(db.DB)
	transactionRepo := persistence.NewGormInventoryTransactionRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	transferRepo := persistence.NewGormTransferRepository(db.DB)

	retry := persistence.NewRetryRunner(cfg.Retry, nil)
	scope := persistence.NewGormTransactionScope(db.DB, retry)

	inventoryService := appinv.NewInventoryService(recordRepo, transactionRepo, scope)
	fulfillmentService := apporder.NewFulfillmentService(orderRepo, scope)
	transferService := apptransfer.NewTransferService(transferRepo, scope)

	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	orderHandler := handler.NewOrderHandler(fulfillmentService)
	transferHandler := handler.NewTransferHandler(transferService)
	systemHandler := handler.NewSystemHandler()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", healthHandler(db))

	inventoryRoutes := router.NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.GET("/stock", inventoryHandler.GetStock)
	inventoryRoutes.GET("/records", inventoryHandler.List)
	inventoryRoutes.GET("/records/alerts/low-stock", inventoryHandler.ListLowStock)
	inventoryRoutes.GET("/summary", inventoryHandler.GetSummary)
	inventoryRoutes.GET("/transactions", inventoryHandler.ListTransactions)
	inventoryRoutes.POST("/stock/adjust", inventoryHandler.Adjust)
	inventoryRoutes.POST("/stock/adjust/bulk", inventoryHandler.BulkAdjust)
	inventoryRoutes.POST("/stock/initial", inventoryHandler.SetInitialStock)
	inventoryRoutes.POST("/stock/initial/bulk", inventoryHandler.BulkSetInitialStock)
	inventoryRoutes.POST("/stock/allocate", inventoryHandler.Allocate)
	inventoryRoutes.POST("/stock/recall", inventoryHandler.Recall)

	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.POST("", orderHandler.Create)
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/:id", orderHandler.GetByID)
	orderRoutes.POST("/:id/complete", orderHandler.Complete)
	orderRoutes.POST("/:id/cancel", orderHandler.Cancel)
	orderRoutes.PUT("/:id/items", orderHandler.Revise)
	orderRoutes.POST("/:id/reset", orderHandler.ResetToPending)

	transferRoutes := router.NewDomainGroup("transfers", "/transfers")
	transferRoutes.POST("", transferHandler.Create)
	transferRoutes.GET("", transferHandler.List)
	transferRoutes.GET("/:id", transferHandler.GetByID)
	transferRoutes.POST("/:id/complete", transferHandler.Complete)
	transferRoutes.POST("/:id/cancel", transferHandler.Cancel)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/ping", systemHandler.Ping)
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(inventoryRoutes).
		Register(orderRoutes).
		Register(transferRoutes).
		Register(systemRoutes)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
