package handlers

import (
	"github.com/gofiber/fiber/v2"
)

const stripeSignatureHeader = "Stripe-Signature"

type WebhookHandler struct {
	webhooks      WebhookService
	exposeDetails bool
}

func NewWebhookHandler(webhooks WebhookService, exposeDetails bool) *WebhookHandler {
	return &WebhookHandler{webhooks: webhooks, exposeDetails: exposeDetails}
}

// Receive processa eventos assinados do Stripe
func (h *WebhookHandler) Receive(c *fiber.Ctx) error {
	// fasthttp reuses the request buffer after the handler returns
	payload := append([]byte(nil), c.Body()...)

	if err := h.webhooks.Handle(c.UserContext(), payload, c.Get(stripeSignatureHeader)); err != nil {
		return respondError(c, err, h.exposeDetails)
	}
	return c.JSON(fiber.Map{"received": true})
}
