package handlers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lingobridge/lingobridge/internal/models"
)

const exportLimit = 1000

// GetHistory handles GET /api/history
func (h *Handler) GetHistory(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)

	entries, err := h.translationService.Recent(c.Context(), limit)
	if err != nil {
		return err
	}

	return c.JSON(models.HistoryResponse{
		History: entries,
		Total:   len(entries),
	})
}

// ClearHistory handles DELETE /api/history
func (h *Handler) ClearHistory(c *fiber.Ctx) error {
	if err := h.translationService.ClearHistory(c.Context()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "History cleared successfully"})
}

// GetStats handles GET /api/stats
func (h *Handler) GetStats(c *fiber.Ctx) error {
	stats, err := h.translationService.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// ExportHistoryCSV handles GET /api/history/export/csv
func (h *Handler) ExportHistoryCSV(c *fiber.Ctx) error {
	entries, err := h.translationService.Recent(c.Context(), exportLimit)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"ID", "Timestamp", "Source Text", "Translation", "Source Lang", "Target Lang", "Speed (ms)"}); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{
			e.ID,
			e.Timestamp.Format(time.RFC3339),
			e.SourceText,
			e.TranslatedText,
			e.SourceLang,
			e.TargetLang,
			fmt.Sprintf("%.0f", e.InferenceTimeMS),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", `attachment; filename=lingobridge_translations.csv`)
	return c.Send(buf.Bytes())
}

// ExportHistoryJSON handles GET /api/history/export/json
func (h *Handler) ExportHistoryJSON(c *fiber.Ctx) error {
	entries, err := h.translationService.Recent(c.Context(), exportLimit)
	if err != nil {
		return err
	}

	payload, err := json.MarshalIndent(fiber.Map{
		"translations": entries,
		"count":        len(entries),
	}, "", "  ")
	if err != nil {
		return err
	}

	c.Set("Content-Type", "application/json")
	c.Set("Content-Disposition", `attachment; filename=lingobridge_translations.json`)
	return c.Send(payload)
}
