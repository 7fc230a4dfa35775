package usecases

import (
	"context"
	"time"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/entities"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/quiz"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/notification"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
)

// ISubmissionStore is the best-effort persistence client
type ISubmissionStore interface {
	IsAvailable() bool
	InsertSubmission(ctx context.Context, submission *entities.QuizSubmission) uuid.UUID
	UpdateSubmission(ctx context.Context, id uuid.UUID, update entities.SubmissionUpdate) bool
	UpdateSubmissionsByEmail(ctx context.Context, email string, update entities.SubmissionUpdate) bool
	ListRetryable(ctx context.Context, since time.Time, maxRetries int) ([]entities.QuizSubmission, error)
	InsertPurchase(ctx context.Context, purchase *entities.PurchaseRecord) bool
}

// INotifier sends the funnel emails without ever failing the caller
type INotifier interface {
	SendReport(ctx context.Context, email string, report entities.Report) notification.Delivery
	SendSummary(ctx context.Context, email string)
	SendPurchaseWelcome(ctx context.Context, email, name string) notification.Delivery
}

// IEventVerifier authenticates payment webhooks
type IEventVerifier interface {
	Verify(payload []byte, signature string) (stripe.Event, error)
}

// IReportWriter produces free-text reports for the retry sweep
type IReportWriter interface {
	GenerateReport(ctx context.Context, answers map[string]string) (string, error)
}

// ISessionStore keeps wizard sessions between requests
type ISessionStore interface {
	Get(ctx context.Context, id string) (*quiz.Session, error)
	Save(ctx context.Context, s *quiz.Session) error
	Delete(ctx context.Context, id string) error
}
