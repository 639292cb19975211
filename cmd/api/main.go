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

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/johnquangdev/actionsync/pkg/validator"

	"github.com/johnquangdev/actionsync/internal/adapter/handler"
	"github.com/johnquangdev/actionsync/internal/adapter/repository"
	"github.com/johnquangdev/actionsync/internal/infrastructure/cache"
	"github.com/johnquangdev/actionsync/internal/infrastructure/database"
	"github.com/johnquangdev/actionsync/internal/usecase/extraction"
	"github.com/johnquangdev/actionsync/internal/usecase/fanout"
	"github.com/johnquangdev/actionsync/internal/usecase/syncer"
	pkgai "github.com/johnquangdev/actionsync/pkg/ai"
	"github.com/johnquangdev/actionsync/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run migrations only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Applying migrations (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize sync lock backend
	log.Println("📦 Connecting to Redis...")
	var locker cache.Locker
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Printf("⚠️  Redis unavailable (%v); sync locks are process-local only", err)
		locker = cache.NewMemoryStore()
	} else {
		defer redisClient.Close()
		locker = cache.NewRedisLocker(redisClient)
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	transcriptRepo := repository.NewTranscriptRepository(db)
	integrationRepo := repository.NewIntegrationRepository(db)

	// Initialize extraction engine
	log.Println("🤖 Initializing extraction engine...")
	groqClient := pkgai.NewGroqClient(&cfg.LLM)
	var model extraction.ModelClient
	if groqClient.Configured() {
		model = groqClient
	} else {
		log.Println("⚠️  No model credential configured; extraction runs heuristic-only")
	}
	engine := extraction.NewEngine(model, logger)

	// Initialize processor factory
	log.Println("🏭 Initializing processor factory...")
	factory := fanout.NewFactory(taskRepo, userRepo, integrationRepo, &cfg.Board, logger)

	// Initialize sync orchestrator
	log.Println("🔄 Initializing sync service...")
	syncService := syncer.NewService(
		integrationRepo,
		transcriptRepo,
		engine,
		factory,
		locker,
		&cfg.Sync,
		&cfg.Source,
		logger,
	)

	// Initialize background scheduler
	schedulerCfg, err := config.LoadScheduler()
	if err != nil {
		log.Fatalf("Failed to load scheduler configuration: %v", err)
	}
	scheduler := syncer.NewScheduler(syncService, integrationRepo, schedulerCfg, logger)
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	extractionHandler := handler.NewExtraction(engine, logger)
	syncHandler := handler.NewSync(syncService, factory, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, extractionHandler, syncHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
