// Package handlers contains the HTTP layer: request parsing, response
// shaping, and delegation to the service layer.
package handlers

import (
	"github.com/lingobridge/lingobridge/internal/cache"
	"github.com/lingobridge/lingobridge/internal/config"
	"github.com/lingobridge/lingobridge/internal/events"
	"github.com/lingobridge/lingobridge/internal/history"
	"github.com/lingobridge/lingobridge/internal/inference"
	"github.com/lingobridge/lingobridge/internal/logging"
	"github.com/lingobridge/lingobridge/internal/pool"
	"github.com/lingobridge/lingobridge/internal/services"
)

// Version is the service version reported by the info endpoints
const Version = "1.0.0"

// Handler contains all HTTP handlers
type Handler struct {
	logger *logging.Logger
	nodes  *pool.Pool
	prober pool.HealthProber
	cache  *cache.Store
	// Services
	translationService *services.TranslationService
	streamService      *services.StreamTranslationService
	fileService        *services.FileTranslationService
}

// New creates a new handler instance and wires the service layer
func New(
	logger *logging.Logger,
	cfg config.Config,
	nodes *pool.Pool,
	store history.Store,
	publisher events.Publisher,
) *Handler {
	cacheStore := cache.New(cfg.Cache.MaxSize, cfg.Cache.TTL, logger)
	client := inference.NewClient(cfg.Inference, logger)
	prober := pool.NewHTTPProber(cfg.Pool.ProbeTimeout)

	translationService := services.NewTranslationService(logger, cacheStore, nodes, client, store, publisher, cfg.Events.Subject)
	streamService := services.NewStreamTranslationService(logger, cacheStore, nodes, client, store, publisher, cfg.Events.Subject)
	fileService := services.NewFileTranslationService(logger, translationService)

	return &Handler{
		logger:             logger,
		nodes:              nodes,
		prober:             prober,
		cache:              cacheStore,
		translationService: translationService,
		streamService:      streamService,
		fileService:        fileService,
	}
}
