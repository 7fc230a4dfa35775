package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/entities"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/logger"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/metrics"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) Name() string { return "mock" }

func (m *mockBackend) InsertSubmission(ctx context.Context, s *entities.QuizSubmission) (uuid.UUID, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockBackend) UpdateSubmission(ctx context.Context, id uuid.UUID, u entities.SubmissionUpdate) error {
	return m.Called(ctx, id, u).Error(0)
}

func (m *mockBackend) UpdateSubmissionsByEmail(ctx context.Context, email string, u entities.SubmissionUpdate) error {
	return m.Called(ctx, email, u).Error(0)
}

func (m *mockBackend) ListRetryable(ctx context.Context, since time.Time, max int) ([]entities.QuizSubmission, error) {
	args := m.Called(ctx, since, max)
	rows, _ := args.Get(0).([]entities.QuizSubmission)
	return rows, args.Error(1)
}

func (m *mockBackend) InsertPurchase(ctx context.Context, p *entities.PurchaseRecord) error {
	return m.Called(ctx, p).Error(0)
}

func TestStore_SwallowsWriteErrors(t *testing.T) {
	backend := new(mockBackend)
	m := metrics.New()
	store := NewStore(backend, logger.NewTestLogger(t), m)

	backend.On("InsertSubmission", mock.Anything, mock.Anything).Return(uuid.Nil, errors.New("connection refused"))
	backend.On("UpdateSubmission", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("timeout"))
	backend.On("InsertPurchase", mock.Anything, mock.Anything).Return(errors.New("schema mismatch"))

	ctx := context.Background()
	id := store.InsertSubmission(ctx, &entities.QuizSubmission{Email: "jane@example.com"})
	assert.Equal(t, uuid.Nil, id)

	status := entities.StatusSent
	assert.False(t, store.UpdateSubmission(ctx, uuid.New(), entities.SubmissionUpdate{ReportStatus: &status}))
	assert.False(t, store.InsertPurchase(ctx, &entities.PurchaseRecord{Email: "jane@example.com"}))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.PersistenceErrors.WithLabelValues("insert_submission")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PersistenceErrors.WithLabelValues("update_submission")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PersistenceErrors.WithLabelValues("insert_purchase")))
	backend.AssertExpectations(t)
}

func TestStore_UpdateSkipsNilID(t *testing.T) {
	backend := new(mockBackend)
	store := NewStore(backend, logger.NewNoOpLogger(), nil)

	status := entities.StatusSent
	assert.False(t, store.UpdateSubmission(context.Background(), uuid.Nil, entities.SubmissionUpdate{ReportStatus: &status}))
	backend.AssertNotCalled(t, "UpdateSubmission", mock.Anything, mock.Anything, mock.Anything)
}

func TestStore_ListRetryableReturnsError(t *testing.T) {
	backend := new(mockBackend)
	store := NewStore(backend, logger.NewNoOpLogger(), nil)

	backend.On("ListRetryable", mock.Anything, mock.Anything, 3).Return(nil, errors.New("boom"))

	rows, err := store.ListRetryable(context.Background(), time.Now(), 3)
	assert.Error(t, err)
	assert.Nil(t, rows)
}

func TestStore_NoopBackendIsUnavailable(t *testing.T) {
	store := NewStore(nil, logger.NewNoOpLogger(), nil)

	require.False(t, store.IsAvailable())
	assert.Equal(t, NoopBackendName, store.Backend())
	assert.Equal(t, uuid.Nil, store.InsertSubmission(context.Background(), &entities.QuizSubmission{Email: "a@b.co"}))
	assert.False(t, store.InsertPurchase(context.Background(), &entities.PurchaseRecord{Email: "a@b.co"}))

	rows, err := store.ListRetryable(context.Background(), time.Now(), 3)
	assert.NoError(t, err)
	assert.Empty(t, rows)
}
