package repository

import (
	"context"
	"time"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/entities"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/repositories"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/logger"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/metrics"
	"github.com/google/uuid"
)

// Store is the best-effort persistence client. Write failures are logged and
// counted, never returned: the quiz flow continues without a stored record.
type Store struct {
	backend repositories.Backend
	log     logger.Logger
	metrics *metrics.Metrics
}

// NewStore cria uma nova instância de Store
func NewStore(backend repositories.Backend, log logger.Logger, m *metrics.Metrics) *Store {
	if backend == nil {
		backend = NewNoopRepository()
	}
	return &Store{
		backend: backend,
		log:     log.WithFields(map[string]interface{}{"backend": backend.Name()}),
		metrics: m,
	}
}

// IsAvailable reports whether a real database backs the store.
func (s *Store) IsAvailable() bool {
	return s.backend.Name() != NoopBackendName
}

func (s *Store) Backend() string {
	return s.backend.Name()
}

// InsertSubmission returns uuid.Nil when the row could not be stored.
func (s *Store) InsertSubmission(ctx context.Context, submission *entities.QuizSubmission) uuid.UUID {
	if !s.IsAvailable() {
		s.log.Info("Database not configured, skipping submission insert", map[string]interface{}{
			"email": submission.Email,
		})
		return uuid.Nil
	}

	id, err := s.backend.InsertSubmission(ctx, submission)
	if err != nil {
		s.fail("insert_submission", err, map[string]interface{}{"email": submission.Email})
		return uuid.Nil
	}

	s.log.Debug("Submission stored", map[string]interface{}{"id": id.String()})
	return id
}

// UpdateSubmission reports whether the update reached the database.
func (s *Store) UpdateSubmission(ctx context.Context, id uuid.UUID, update entities.SubmissionUpdate) bool {
	if !s.IsAvailable() || id == uuid.Nil {
		return false
	}

	if err := s.backend.UpdateSubmission(ctx, id, update); err != nil {
		s.fail("update_submission", err, map[string]interface{}{"id": id.String()})
		return false
	}
	return true
}

// UpdateSubmissionsByEmail reports whether the update reached the database.
func (s *Store) UpdateSubmissionsByEmail(ctx context.Context, email string, update entities.SubmissionUpdate) bool {
	if !s.IsAvailable() {
		return false
	}

	if err := s.backend.UpdateSubmissionsByEmail(ctx, email, update); err != nil {
		s.fail("update_submissions_by_email", err, map[string]interface{}{"email": email})
		return false
	}
	return true
}

// ListRetryable is the only read and the only call that returns its error.
func (s *Store) ListRetryable(ctx context.Context, since time.Time, maxRetries int) ([]entities.QuizSubmission, error) {
	if !s.IsAvailable() {
		return nil, nil
	}

	submissions, err := s.backend.ListRetryable(ctx, since, maxRetries)
	if err != nil {
		s.metrics.IncPersistenceError("list_retryable")
		return nil, err
	}
	return submissions, nil
}

// InsertPurchase reports whether the purchase reached the database.
func (s *Store) InsertPurchase(ctx context.Context, purchase *entities.PurchaseRecord) bool {
	if !s.IsAvailable() {
		s.log.Info("Database not configured, skipping purchase insert", map[string]interface{}{
			"email":  purchase.Email,
			"status": string(purchase.PaymentStatus),
		})
		return false
	}

	if err := s.backend.InsertPurchase(ctx, purchase); err != nil {
		s.fail("insert_purchase", err, map[string]interface{}{
			"email":      purchase.Email,
			"session_id": purchase.StripeSessionID,
		})
		return false
	}
	return true
}

func (s *Store) fail(operation string, err error, fields map[string]interface{}) {
	s.metrics.IncPersistenceError(operation)
	fields["operation"] = operation
	s.log.WithError(err).Error("Database operation failed", fields)
}
