package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/lingobridge/lingobridge/internal/services"
)

// TranslateFile handles POST /api/translate-file
func (h *Handler) TranslateFile(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return services.NewServiceErrorWithDetails(services.CodeInvalidRequest,
			"File upload is required", map[string]interface{}{"error": err.Error()})
	}

	targetLang := c.FormValue("target_lang")
	if targetLang == "" {
		targetLang = "en"
	}

	file, err := fileHeader.Open()
	if err != nil {
		return services.NewServiceErrorWithDetails(services.CodeInvalidRequest,
			"Failed to open uploaded file", map[string]interface{}{"error": err.Error()})
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return services.NewServiceErrorWithDetails(services.CodeInvalidRequest,
			"Failed to read uploaded file", map[string]interface{}{"error": err.Error()})
	}

	result, err := h.fileService.TranslateFile(c.Context(), fileHeader.Filename, content, targetLang)
	if err != nil {
		return err
	}

	return c.JSON(result)
}
