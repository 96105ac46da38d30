package handlers

import (
	"bufio"
	"context"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/lingobridge/lingobridge/internal/models"
	"github.com/lingobridge/lingobridge/internal/services"
)

// TranslateStream handles GET /api/translate-stream with SSE.
// Query params: text, source_lang, target_lang, use_context, is_document.
func (h *Handler) TranslateStream(c *fiber.Ctx) error {
	req := &models.TranslateRequest{
		Text:       c.Query("text"),
		SourceLang: c.Query("source_lang", "auto"),
		TargetLang: c.Query("target_lang", "en"),
		UseContext: c.Query("use_context") == "true",
		IsDocument: c.Query("is_document") == "true",
	}

	// Reject bad requests before committing to the event stream
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    services.CodeInvalidRequest,
				Message: err.Error(),
			},
		})
	}

	if req.UseContext {
		contextText, err := h.translationService.ContextFromHistory(c.Context(), models.MaxHistoryContext)
		if err != nil {
			h.logger.Warn("Failed to load translation context", "error", err)
		} else {
			req.ContextText = contextText
		}
	}

	// Set SSE headers
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no") // Disable nginx buffering

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		h.runStream(req, w)
	})

	return nil
}

// runStream drives the streaming service over w. The Fiber context may be
// released after the handler returns, so the stream runs on its own
// context; cancelling it on return unblocks the upstream token producer
// when the client disconnects mid-stream.
func (h *Handler) runStream(req *models.TranslateRequest, w io.Writer) {
	streamCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sseWriter := services.NewSSEWriter(w)

	if err := h.streamService.TranslateStream(streamCtx, req, sseWriter); err != nil {
		h.logger.Error("Streaming translation failed", "error", err)

		event := models.StreamEvent{Done: true}
		if svcErr, ok := err.(*services.ServiceError); ok {
			event.Error = svcErr.Message
		} else {
			event.Error = err.Error()
		}
		_ = sseWriter.WriteEvent(event)
		_ = sseWriter.Flush()
	}
}
