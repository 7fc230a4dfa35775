package repositories

import (
	"context"
	"time"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/entities"
	"github.com/google/uuid"
)

// SubmissionRepository define o acesso às submissões do quiz
type SubmissionRepository interface {
	InsertSubmission(ctx context.Context, submission *entities.QuizSubmission) (uuid.UUID, error)
	UpdateSubmission(ctx context.Context, id uuid.UUID, update entities.SubmissionUpdate) error
	UpdateSubmissionsByEmail(ctx context.Context, email string, update entities.SubmissionUpdate) error
	// ListRetryable returns failed submissions created at or after since whose
	// retry count is still below maxRetries.
	ListRetryable(ctx context.Context, since time.Time, maxRetries int) ([]entities.QuizSubmission, error)
}

// PurchaseRepository define o acesso aos registros de compra
type PurchaseRepository interface {
	InsertPurchase(ctx context.Context, purchase *entities.PurchaseRecord) error
}
