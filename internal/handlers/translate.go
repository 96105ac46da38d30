package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lingobridge/lingobridge/internal/language"
	"github.com/lingobridge/lingobridge/internal/models"
)

// parseError is the uniform response for malformed JSON bodies
func parseError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INVALID_JSON",
			Message: "Failed to parse JSON body",
			Details: err.Error(),
		},
	})
}

// Translate handles POST /api/translate
func (h *Handler) Translate(c *fiber.Ctx) error {
	var req models.TranslateRequest
	if err := c.BodyParser(&req); err != nil {
		return parseError(c, err)
	}
	if req.TargetLang == "" {
		req.TargetLang = "en"
	}

	if req.UseContext && req.ContextText == "" {
		contextText, err := h.translationService.ContextFromHistory(c.Context(), models.MaxHistoryContext)
		if err != nil {
			h.logger.Warn("Failed to load translation context", "error", err)
		} else {
			req.ContextText = contextText
		}
	}

	resp, err := h.translationService.Translate(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// BatchTranslate handles POST /api/batch-translate
func (h *Handler) BatchTranslate(c *fiber.Ctx) error {
	var req models.BatchTranslateRequest
	if err := c.BodyParser(&req); err != nil {
		return parseError(c, err)
	}
	if req.TargetLang == "" {
		req.TargetLang = "en"
	}

	resp, err := h.translationService.TranslateBatch(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DetectLanguage handles POST /api/detect-language
func (h *Handler) DetectLanguage(c *fiber.Ctx) error {
	var req models.DetectLanguageRequest
	if err := c.BodyParser(&req); err != nil {
		return parseError(c, err)
	}

	code := "auto"
	if req.Text != "" {
		code = language.Detect(req.Text)
	}

	return c.JSON(models.DetectLanguageResponse{
		LanguageCode: code,
		LanguageName: language.Name(code),
	})
}

// Languages handles GET /api/languages
func (h *Handler) Languages(c *fiber.Ctx) error {
	return c.JSON(models.LanguagesResponse{
		Languages: language.Supported,
		Total:     len(language.Supported),
	})
}
