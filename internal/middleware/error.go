package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/lingobridge/lingobridge/internal/logging"
	"github.com/lingobridge/lingobridge/internal/models"
	"github.com/lingobridge/lingobridge/internal/services"
)

// statusForServiceError maps service error codes to HTTP statuses
func statusForServiceError(code string) int {
	switch code {
	case services.CodeInvalidRequest:
		return fiber.StatusBadRequest
	case services.CodeUpstreamUnavailable:
		return fiber.StatusServiceUnavailable
	case services.CodeUpstreamTimeout:
		return fiber.StatusGatewayTimeout
	case services.CodeUpstreamError, services.CodeStreamFailed:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler returns a custom error handler middleware
func ErrorHandler(logger *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := "ERROR"
		message := "Internal Server Error"

		var svcErr *services.ServiceError
		if errors.As(err, &svcErr) {
			code = statusForServiceError(svcErr.Code)
			errCode = svcErr.Code
			message = svcErr.Message
		} else if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		logger.Error("Request error",
			"path", c.Path(),
			"method", c.Method(),
			"status", code,
			"error", err,
		)

		return c.Status(code).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    errCode,
				Message: message,
			},
		})
	}
}
