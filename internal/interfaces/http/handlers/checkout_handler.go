package handlers

import (
	"fmt"
	"strings"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/application/validation"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/apperrors"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/payment"
	"github.com/gofiber/fiber/v2"
)

const (
	devCheckoutError   = "Stripe is in development mode. No real payment will be processed."
	devCheckoutMessage = "This is a development preview. A real checkout link will be generated in production."
)

type checkoutBody struct {
	Email           string      `json:"email"`
	EstimatedIncome interface{} `json:"estimatedIncome"`
	Badge           string      `json:"badge"`
}

type CheckoutHandler struct {
	checkout      CheckoutService
	defaultOrigin string
	exposeDetails bool
}

func NewCheckoutHandler(checkout CheckoutService, defaultOrigin string, exposeDetails bool) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, defaultOrigin: defaultOrigin, exposeDetails: exposeDetails}
}

// CreateSession cria a sessão de pagamento do guia
func (h *CheckoutHandler) CreateSession(c *fiber.Ctx) error {
	var body checkoutBody
	if err := validation.Checkout.Decode(c.Body(), &body); err != nil {
		return respondError(c, apperrors.Validation(apperrors.CodeInvalidPayload, "Invalid request format"), h.exposeDetails)
	}

	origin := c.Get(fiber.HeaderOrigin)
	if origin == "" {
		origin = h.defaultOrigin
	}

	session, err := h.checkout.CreateSession(c.UserContext(), payment.CheckoutRequest{
		Email:           strings.TrimSpace(body.Email),
		EstimatedIncome: incomeString(body.EstimatedIncome),
		Badge:           body.Badge,
		Origin:          origin,
	})
	if err != nil {
		return respondError(c, err, h.exposeDetails)
	}

	if session.DevelopmentMode {
		return c.JSON(fiber.Map{
			"error":           devCheckoutError,
			"success":         false,
			"developmentMode": true,
			"message":         devCheckoutMessage,
			"url":             nil,
		})
	}
	return c.JSON(fiber.Map{
		"sessionId": session.SessionID,
		"url":       session.URL,
		"success":   true,
	})
}

func incomeString(v interface{}) string {
	switch income := v.(type) {
	case nil:
		return ""
	case string:
		return income
	case float64:
		return fmt.Sprintf("%.0f", income)
	}
	return fmt.Sprint(v)
}
