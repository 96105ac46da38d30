package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lingobridge/lingobridge/internal/models"
	"github.com/lingobridge/lingobridge/internal/pool"
)

// Health handles health check requests
func (h *Handler) Health(c *fiber.Ctx) error {
	summary := h.nodes.Summarize()

	return c.JSON(models.HealthResponse{
		Status:      "healthy",
		Service:     "lingobridge-gateway",
		Version:     Version,
		NodesOnline: summary.OnlineNodes,
		NodesTotal:  summary.TotalNodes,
	})
}

// probePrimary checks whether the first pool node answers
func (h *Handler) probePrimary(ctx context.Context) string {
	nodes := h.nodes.Snapshot()
	if len(nodes) == 0 {
		return pool.StatusOffline
	}

	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := h.prober.Probe(probeCtx, nodes[0].URL); err != nil {
		return pool.StatusOffline
	}
	return pool.StatusOnline
}

// Root reports app info plus primary-node reachability
func (h *Handler) Root(c *fiber.Ctx) error {
	status := h.probePrimary(c.Context())

	message := "Inference cluster is reachable"
	if status != pool.StatusOnline {
		message = "Cannot connect to the inference cluster. Make sure a node is running."
	}

	return c.JSON(fiber.Map{
		"app":          "LingoBridge Translation Gateway",
		"version":      Version,
		"node_status":  status,
		"node_message": message,
		"features": []string{
			"Local AI translation",
			"100% private",
			"Streaming output",
			"25+ languages",
			"Speed metrics",
			"Persistent history",
		},
	})
}

// OfflineStatus attests that translation runs fully locally
func (h *Handler) OfflineStatus(c *fiber.Ctx) error {
	status := h.probePrimary(c.Context())
	ready := status == pool.StatusOnline

	message := "100% Local - No internet required"
	if !ready {
		message = "Inference cluster not connected"
	}

	return c.JSON(fiber.Map{
		"offline_ready": ready,
		"local_only":    true,
		"external_apis": false,
		"node_status":   status,
		"message":       message,
	})
}

// NotFound handles 404 errors
func (h *Handler) NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "NOT_FOUND",
			Message: "Route not found",
			Details: c.Path(),
		},
	})
}
