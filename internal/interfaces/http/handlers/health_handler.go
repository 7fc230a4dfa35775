package handlers

import (
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/apperrors"
	"github.com/gofiber/fiber/v2"
)

const Version = "1.0.0"

type HealthHandler struct {
	health HealthService
}

func NewHealthHandler(health HealthService) *HealthHandler {
	return &HealthHandler{health: health}
}

// Liveness responde se o processo está de pé
func (h *HealthHandler) Liveness(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"version": Version,
	})
}

// Health classifica as credenciais configuradas
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(h.health.Health())
}

// EnvDebug mostra o formato das variáveis de ambiente sem expor os valores
func (h *HealthHandler) EnvDebug(c *fiber.Ctx) error {
	return c.JSON(h.health.EnvDebug())
}

// StripeTest testa a conexão com o Stripe
func (h *HealthHandler) StripeTest(c *fiber.Ctx) error {
	result, err := h.health.StripeTest(c.UserContext())
	if err != nil {
		appErr := apperrors.Normalize(err)
		return c.Status(appErr.Status).JSON(fiber.Map{
			"success": false,
			"error":   appErr.Details,
			"details": "Check server logs for more information",
		})
	}
	return c.JSON(result)
}
