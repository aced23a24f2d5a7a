package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	applabel "github.com/techlabel/backend/internal/application/label"
	"github.com/techlabel/backend/internal/infrastructure/config"
	"github.com/techlabel/backend/internal/infrastructure/logger"
	"github.com/techlabel/backend/internal/infrastructure/persistence"
	"github.com/techlabel/backend/internal/infrastructure/printer"
	"github.com/techlabel/backend/internal/infrastructure/render"
	"github.com/techlabel/backend/internal/infrastructure/storage"
	"github.com/techlabel/backend/internal/interfaces/http/handler"
	"github.com/techlabel/backend/internal/interfaces/http/middleware"
	"github.com/techlabel/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
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

	log.Info("Starting TechLabel Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("printer_mode", cfg.Printer.Mode),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Backup storage for rendered labels
	backups, err := storage.NewFileSystemStore(&storage.FileSystemStoreConfig{
		BasePath: cfg.Storage.BackupPath,
		Logger:   log,
	})
	if err != nil {
		log.Fatal("Failed to initialize backup storage", zap.Error(err))
	}

	// Fonts and renderers
	fonts, err := render.NewFontSet()
	if err != nil {
		log.Fatal("Failed to load fonts", zap.Error(err))
	}

	// Printer transport selection
	prt := buildPrinter(&cfg.Printer, log)
	defer func() {
		if err := prt.Close(); err != nil {
			log.Warn("Error closing printer", zap.Error(err))
		}
	}()

	// Application service
	jobRepo := persistence.NewGormPrintJobRepository(db.DB)
	labelService := applabel.NewLabelService(
		render.NewLabelRenderer(fonts, log),
		render.NewCanvasRenderer(fonts, log),
		prt, backups, jobRepo, log)

	// Probe the printer. A missing device is logged, not fatal: the
	// service stays up and reports not ready until the next restart.
	initCtx, cancelInit := context.WithTimeout(context.Background(), 2*time.Minute)
	labelService.InitializePrinter(initCtx, cfg.Printer.InitRetries, cfg.Printer.InitRetryDelay)
	cancelInit()

	// Periodic backup retention sweep
	cleanupStop := make(chan struct{})
	defer close(cleanupStop)
	if cfg.Storage.RetentionDays > 0 {
		go runBackupCleanup(backups, cfg.Storage.RetentionDays, log, cleanupStop)
	}

	// Set gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Register custom validators
	middleware.SetupValidator()

	// Setup gin engine
	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	} else {
		if err := engine.SetTrustedProxies(nil); err != nil {
			log.Fatal("Failed to clear trusted proxies", zap.Error(err))
		}
	}

	// Middleware chain
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Root and health endpoints live outside the versioned API
	engine.GET("/", overviewHandler(cfg))
	engine.GET("/health", healthHandler(db, labelService))

	// API routes
	labelHandler := handler.NewLabelHandler(labelService)
	systemHandler := handler.NewSystemHandler()

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.LabelRoutes(labelHandler))
	r.Register(handler.StatusRoutes(labelHandler))

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
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

// buildPrinter selects the printer transport from configuration. USB and
// serial transports are opened lazily so the startup retry loop can pick
// up a device that appears late.
func buildPrinter(cfg *config.PrinterConfig, log *zap.Logger) printer.Printer {
	switch cfg.Mode {
	case "mock":
		log.Warn("Using mock printer, nothing will be printed",
			zap.Int("tape_width_mm", cfg.MockTapeWidthMM))
		return printer.NewMock(cfg.MockTapeWidthMM, log)
	case "serial":
		port := cfg.SerialPort
		baud := cfg.BaudRate
		return printer.NewBrotherDialer(func() (printer.Transport, error) {
			return printer.NewSerialTransport(port, baud)
		}, log)
	default:
		return printer.NewBrotherDialer(func() (printer.Transport, error) {
			return printer.NewUSBTransport(printer.BrotherVendorID, printer.PTE550WProductID)
		}, log)
	}
}

// runBackupCleanup sweeps expired PNG backups once a day
func runBackupCleanup(backups storage.BackupStore, retentionDays int, log *zap.Logger, stop <-chan struct{}) {
	age := time.Duration(retentionDays) * 24 * time.Hour
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			removed, err := backups.CleanupOlderThan(ctx, age)
			cancel()
			if err != nil {
				log.Warn("Backup cleanup failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				log.Info("Removed expired backups", zap.Int("count", removed))
			}
		}
	}
}

// overviewHandler describes the service and its endpoints
func overviewHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": cfg.App.Name,
			"version": "1.0.0",
			"endpoints": gin.H{
				"print_cable":    "POST /api/v1/print/cable",
				"print_device":   "POST /api/v1/print/device",
				"print_warning":  "POST /api/v1/print/warning",
				"print_text":     "POST /api/v1/print/text",
				"print_batch":    "POST /api/v1/print/batch",
				"print_custom":   "POST /api/v1/print/custom",
				"custom_preview": "POST /api/v1/print/custom/preview",
				"status":         "GET /api/v1/status",
				"jobs":           "GET /api/v1/print/jobs",
				"health":         "GET /health",
			},
		})
	}
}

// healthHandler reports database and printer health
func healthHandler(db *persistence.Database, labelService *applabel.LabelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		status := labelService.Status()

		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":        "unhealthy",
				"time":          time.Now().Format(time.RFC3339),
				"database":      "error",
				"printer_ready": status.Ready,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":        "healthy",
			"time":          time.Now().Format(time.RFC3339),
			"database":      "ok",
			"printer_ready": status.Ready,
		})
	}
}
