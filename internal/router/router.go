package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/lingobridge/lingobridge/internal/config"
	"github.com/lingobridge/lingobridge/internal/events"
	"github.com/lingobridge/lingobridge/internal/handlers"
	"github.com/lingobridge/lingobridge/internal/history"
	"github.com/lingobridge/lingobridge/internal/logging"
	"github.com/lingobridge/lingobridge/internal/middleware"
	"github.com/lingobridge/lingobridge/internal/pool"
)

// Setup configures all routes and middlewares
func Setup(app *fiber.App, logger *logging.Logger, nodes *pool.Pool, store history.Store, publisher events.Publisher, cfg config.Config) *handlers.Handler {
	// Create handler instance
	h := handlers.New(logger, cfg, nodes, store, publisher)

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-API-Key,X-Request-ID",
	}))
	app.Use(logging.FiberMiddleware(logger))

	// Info endpoints (no auth required)
	app.Get("/health", h.Health)
	app.Get("/", h.Root)

	// API key authentication middleware
	authMiddleware := middleware.APIKeyAuth(logger, cfg.Auth.APIKeys, cfg.Auth.Enabled)

	// API routes (protected by API key)
	api := app.Group("/api", authMiddleware)

	// Translation Routes
	api.Get("/languages", h.Languages)
	api.Post("/translate", h.Translate)
	api.Post("/batch-translate", h.BatchTranslate)
	api.Get("/translate-stream", h.TranslateStream)
	api.Post("/detect-language", h.DetectLanguage)
	api.Post("/translate-file", h.TranslateFile)

	// History Routes
	api.Get("/history", h.GetHistory)
	api.Delete("/history", h.ClearHistory)
	api.Get("/history/export/csv", h.ExportHistoryCSV)
	api.Get("/history/export/json", h.ExportHistoryJSON)
	api.Get("/stats", h.GetStats)

	// Cluster Management Routes
	api.Get("/cluster/status", h.ClusterStatus)
	api.Post("/cluster/add", h.AddNode)

	// Offline Capability Route
	api.Get("/status/offline", h.OfflineStatus)

	// 404 handler
	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration
func New(logger *logging.Logger, nodes *pool.Pool, store history.Store, publisher events.Publisher, cfg config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "LingoBridge Gateway",
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	Setup(app, logger, nodes, store, publisher, cfg)

	return app
}
