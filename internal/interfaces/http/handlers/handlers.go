package handlers

import (
	"context"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/application/usecases"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/quiz"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/payment"
)

type SubmissionService interface {
	Submit(ctx context.Context, in usecases.SubmitInput) (*usecases.SubmitResult, error)
}

type RetryService interface {
	Run(ctx context.Context) (*usecases.SweepResult, error)
}

type CheckoutService interface {
	CreateSession(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error)
}

type WebhookService interface {
	Handle(ctx context.Context, payload []byte, signature string) error
}

type WizardService interface {
	Questions() []quiz.BlockView
	Start(ctx context.Context) (*usecases.WizardView, error)
	Get(ctx context.Context, id string) (*usecases.WizardView, error)
	Answer(ctx context.Context, id, questionID, value string) (*usecases.WizardView, error)
	Next(ctx context.Context, id string) (*usecases.WizardView, error)
	Prev(ctx context.Context, id string) (*usecases.WizardView, error)
	Submit(ctx context.Context, id, email string, subscribe bool) (*usecases.WizardView, error)
}

type HealthService interface {
	Health() *usecases.HealthReport
	EnvDebug() *usecases.EnvDebugReport
	StripeTest(ctx context.Context) (*usecases.StripeTestResult, error)
}

// Handlers agrupa todos os handlers HTTP da API
type Handlers struct {
	Quiz     *QuizHandler
	Wizard   *WizardHandler
	Checkout *CheckoutHandler
	Webhook  *WebhookHandler
	Health   *HealthHandler
}
