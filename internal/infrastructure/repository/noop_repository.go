package repository

import (
	"context"
	"time"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/entities"
	"github.com/google/uuid"
)

const NoopBackendName = "noop"

// NoopRepository is used when no database credentials are configured.
type NoopRepository struct{}

func NewNoopRepository() *NoopRepository {
	return &NoopRepository{}
}

func (NoopRepository) Name() string { return NoopBackendName }

func (NoopRepository) InsertSubmission(context.Context, *entities.QuizSubmission) (uuid.UUID, error) {
	return uuid.Nil, nil
}

func (NoopRepository) UpdateSubmission(context.Context, uuid.UUID, entities.SubmissionUpdate) error {
	return nil
}

func (NoopRepository) UpdateSubmissionsByEmail(context.Context, string, entities.SubmissionUpdate) error {
	return nil
}

func (NoopRepository) ListRetryable(context.Context, time.Time, int) ([]entities.QuizSubmission, error) {
	return nil, nil
}

func (NoopRepository) InsertPurchase(context.Context, *entities.PurchaseRecord) error {
	return nil
}
