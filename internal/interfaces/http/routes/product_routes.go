package routes

import (
	"github.com/PavaniTiago/ai-money-quiz-api/internal/interfaces/http/handlers"
	"github.com/gofiber/fiber/v2"
)

// RegisterProductRoutes registra as rotas de compra do guia
func RegisterProductRoutes(router fiber.Router, checkout *handlers.CheckoutHandler, webhook *handlers.WebhookHandler, health *handlers.HealthHandler) {
	router.Post("/checkout", checkout.CreateSession)
	router.Post("/webhook", webhook.Receive)
	router.Get("/test", health.StripeTest)
}
