package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lingobridge/lingobridge/internal/models"
)

// ClusterStatus handles GET /api/cluster/status
func (h *Handler) ClusterStatus(c *fiber.Ctx) error {
	h.nodes.RefreshHealth(c.Context(), h.prober)
	return c.JSON(h.nodes.Summarize())
}

// AddNode handles POST /api/cluster/add
func (h *Handler) AddNode(c *fiber.Ctx) error {
	var req models.AddNodeRequest
	if err := c.BodyParser(&req); err != nil {
		return parseError(c, err)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	node := h.nodes.AddNode(req.URL, req.Name)
	h.logger.Info("Node added to pool", "id", node.ID, "url", node.URL)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      node.ID,
		"message": "Node added",
	})
}
