package handlers

import (
	"github.com/PavaniTiago/ai-money-quiz-api/internal/application/validation"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/apperrors"
	"github.com/gofiber/fiber/v2"
)

type answerBody struct {
	QuestionID string `json:"questionId"`
	Value      string `json:"value"`
}

type emailGateBody struct {
	Email     string `json:"email"`
	Subscribe bool   `json:"subscribe"`
}

type WizardHandler struct {
	wizard WizardService
}

func NewWizardHandler(wizard WizardService) *WizardHandler {
	return &WizardHandler{wizard: wizard}
}

// Questions retorna o catálogo de perguntas
func (h *WizardHandler) Questions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"blocks": h.wizard.Questions()})
}

// Start inicia uma nova sessão do quiz
func (h *WizardHandler) Start(c *fiber.Ctx) error {
	view, err := h.wizard.Start(c.UserContext())
	if err != nil {
		return respondError(c, err, false)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// Get retorna o estado atual de uma sessão
func (h *WizardHandler) Get(c *fiber.Ctx) error {
	view, err := h.wizard.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, false)
	}
	return c.JSON(view)
}

// Answer registra a resposta de uma pergunta
func (h *WizardHandler) Answer(c *fiber.Ctx) error {
	var body answerBody
	if err := validation.Answer.Decode(c.Body(), &body); err != nil {
		return respondError(c, apperrors.Validation(apperrors.CodeInvalidPayload, "questionId and value are required"), false)
	}
	view, err := h.wizard.Answer(c.UserContext(), c.Params("id"), body.QuestionID, body.Value)
	if err != nil {
		return respondError(c, err, false)
	}
	return c.JSON(view)
}

// Next avança para a próxima pergunta
func (h *WizardHandler) Next(c *fiber.Ctx) error {
	view, err := h.wizard.Next(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, false)
	}
	return c.JSON(view)
}

// Prev volta para a pergunta anterior
func (h *WizardHandler) Prev(c *fiber.Ctx) error {
	view, err := h.wizard.Prev(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, false)
	}
	return c.JSON(view)
}

// Submit envia o email e abre o paywall
func (h *WizardHandler) Submit(c *fiber.Ctx) error {
	var body emailGateBody
	if err := validation.EmailGate.Decode(c.Body(), &body); err != nil {
		return respondError(c, apperrors.Validation(apperrors.CodeInvalidPayload, "Invalid request format. Please try again."), false)
	}
	view, err := h.wizard.Submit(c.UserContext(), c.Params("id"), body.Email, body.Subscribe)
	if err != nil {
		return respondError(c, err, false)
	}
	return c.JSON(view)
}
