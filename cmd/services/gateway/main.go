package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lingobridge/lingobridge/internal/config"
	"github.com/lingobridge/lingobridge/internal/events"
	"github.com/lingobridge/lingobridge/internal/history"
	"github.com/lingobridge/lingobridge/internal/logging"
	"github.com/lingobridge/lingobridge/internal/pool"
	"github.com/lingobridge/lingobridge/internal/router"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
	BuildTime = "unknown" // Injected via ldflags during build
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)
	logger.Info("Gateway service starting...",
		"version", Version, "commit", GitCommit, "build time", BuildTime)

	// Build the inference node pool
	nodes := pool.New(logger)
	for _, n := range cfg.Pool.Nodes {
		node := nodes.AddNode(n.URL, n.Name)
		logger.Info("Registered inference node", "id", node.ID, "url", node.URL)
	}

	// Connect the translation history store (configurable backend)
	logger.Info("Opening history store", "type", cfg.History.Type)
	store, err := history.New(cfg.History, logger)
	if err != nil {
		logger.Fatal("Failed to open history store", "error", err)
	}
	defer func() { _ = store.Close() }()

	// Connect the completion event publisher (configurable backend)
	logger.Info("Connecting event publisher", "type", cfg.Events.Type)
	publisher, err := events.New(cfg.Events)
	if err != nil {
		logger.Fatal("Failed to connect event publisher", "error", err)
	}
	defer func() { _ = publisher.Close() }()

	// Log authentication status
	if cfg.Auth.Enabled {
		logger.Info("API key authentication enabled", "num_keys", len(cfg.Auth.APIKeys))
	} else {
		logger.Warn("API key authentication DISABLED - all requests will be allowed")
	}

	// Initialize router
	app := router.New(logger, nodes, store, publisher, *cfg)

	// Create context for background services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start the background health loop over the node pool
	if cfg.Pool.HealthInterval > 0 {
		prober := pool.NewHTTPProber(cfg.Pool.ProbeTimeout)
		nodes.StartHealthLoop(ctx, prober, cfg.Pool.HealthInterval)
		logger.Info("Node health loop started", "interval", cfg.Pool.HealthInterval)
	}

	// Start server in goroutine
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort)
		logger.Info("Server listening", "address", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Stop the health loop
	nodes.Stop()

	// Graceful shutdown with 10 second timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
