package handlers

import (
	"github.com/PavaniTiago/ai-money-quiz-api/internal/application/usecases"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/apperrors"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/logger"
	"github.com/gofiber/fiber/v2"
)

type QuizHandler struct {
	submissions   SubmissionService
	retry         RetryService
	log           logger.Logger
	exposeDetails bool
}

func NewQuizHandler(submissions SubmissionService, retry RetryService, log logger.Logger, exposeDetails bool) *QuizHandler {
	return &QuizHandler{submissions: submissions, retry: retry, log: log, exposeDetails: exposeDetails}
}

// Submit recebe as respostas do quiz e dispara o relatório por email
func (h *QuizHandler) Submit(c *fiber.Ctx) error {
	in, err := usecases.ParseInput(c.Body())
	if err != nil {
		return respondError(c, err, h.exposeDetails)
	}

	result, err := h.submissions.Submit(c.UserContext(), in)
	if err != nil {
		if !apperrors.IsKind(err, apperrors.KindValidation) {
			h.log.WithError(err).Error("Quiz submission failed", map[string]interface{}{"email": in.Email})
		}
		return respondError(c, err, h.exposeDetails)
	}
	return c.JSON(result)
}

// Retry reenvia relatórios que falharam nas últimas 24 horas
func (h *QuizHandler) Retry(c *fiber.Ctx) error {
	result, err := h.retry.Run(c.UserContext())
	if err != nil {
		return respondError(c, err, h.exposeDetails)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"message":   result.Message,
		"processed": result.Processed,
		"sent":      result.Sent,
	})
}
