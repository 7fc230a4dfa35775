package handlers

import (
	"errors"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/apperrors"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/logger"
	"github.com/gofiber/fiber/v2"
)

// respondError writes err as {error, success:false}. With exposeDetails set,
// provider and configuration failures also carry their cause in details.
func respondError(c *fiber.Ctx, err error, exposeDetails bool) error {
	appErr := apperrors.Normalize(err)
	body := fiber.Map{
		"error":   appErr.Message,
		"success": false,
	}
	if exposeDetails && appErr.Details != "" && (appErr.Kind == apperrors.KindConfiguration || appErr.Kind == apperrors.KindExternalService) {
		body["details"] = appErr.Details
	}
	return c.Status(appErr.Status).JSON(body)
}

// ErrorHandler is the fiber fallback for errors returned by handlers and
// middleware, including recovered panics.
func ErrorHandler(log logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"error":   fiberErr.Message,
				"success": false,
			})
		}

		log.Error("Unhandled request error", map[string]interface{}{
			"method": c.Method(),
			"path":   c.Path(),
			"error":  err.Error(),
		})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Internal server error",
			"success": false,
		})
	}
}
