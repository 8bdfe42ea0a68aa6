package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/clarity-ai/backend/internal/api/handlers"
	"github.com/clarity-ai/backend/internal/cache/redis"
	"github.com/clarity-ai/backend/internal/gemini"
	"github.com/clarity-ai/backend/internal/metrics"
	"github.com/clarity-ai/backend/internal/middleware/ratelimit"
	"github.com/clarity-ai/backend/internal/middleware/security"
	"github.com/clarity-ai/backend/internal/middleware/validation"
	"github.com/clarity-ai/backend/internal/pipeline"
	"github.com/clarity-ai/backend/internal/storage/sqlite"
	"github.com/clarity-ai/backend/pkg/config"
	appLogger "github.com/clarity-ai/backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	err = appLogger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting Clarity decision analysis API server")

	metrics.Init()

	sqliteClient, err := sqlite.NewClient(cfg.SQLite.Path)
	if err != nil {
		appLogger.Fatal("Failed to create SQLite client", zap.Error(err))
	}
	defer sqliteClient.Close()

	err = sqliteClient.InitSchema()
	if err != nil {
		appLogger.Fatal("Failed to initialize schema", zap.Error(err))
	}

	geminiClient, err := gemini.NewClient(gemini.Config{
		APIKey:        cfg.Gemini.APIKey,
		Model:         cfg.Gemini.Model,
		FallbackModel: cfg.Gemini.FallbackModel,
		BaseURL:       cfg.Gemini.BaseURL,
		Timeout:       time.Duration(cfg.Gemini.TimeoutSec) * time.Second,
	})
	if err != nil {
		// Missing credential is fatal: the pipeline has no fallback for a
		// configuration error.
		appLogger.Fatal("Failed to create Gemini client", zap.Error(err))
	}

	var cache pipeline.AnalysisCache
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(
			cfg.Redis.Host,
			cfg.Redis.Port,
			cfg.Redis.Password,
			cfg.Redis.DB,
			time.Duration(cfg.Redis.TTLMin)*time.Minute,
		)
		if err != nil {
			appLogger.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		} else {
			defer redisClient.Close()
			cache = redisClient
		}
	}

	engine := pipeline.NewEngine(geminiClient, sqliteClient, cache, cfg.History.Limit)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-User-ID",
		AllowMethods: "GET, POST, OPTIONS",
	}))
	app.Use(security.HeadersMiddleware(security.HeadersConfig{}))
	app.Use(validation.Middleware(validation.Config{
		Logger: appLogger.GetLogger(),
	}))

	limiter := ratelimit.New(ratelimit.Config{
		MaxRequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		Logger:               appLogger.GetLogger(),
	})
	defer limiter.Stop()

	analyzeHandler := handlers.NewAnalyzeHandler(engine)
	historyHandler := handlers.NewHistoryHandler(engine)

	api := app.Group("/api/v1")

	api.Post("/analyze", limiter.Middleware(), analyzeHandler.HandleAnalyze)
	api.Get("/analyze/latest", analyzeHandler.HandleLatest)
	api.Get("/history", historyHandler.GetHistory)

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	api.Get("/ready", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ready",
		})
	})

	app.Get("/metrics", metrics.MetricsHandler())

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	appLogger.Info("Server starting", zap.String("address", addr))

	go func() {
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Server shutting down gracefully...")
	app.Shutdown()
	appLogger.Info("Server stopped")
}
