package usecases

import (
	"context"
	"time"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/entities"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/quiz"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/notification"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/payment"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v76"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) IsAvailable() bool {
	return m.Called().Bool(0)
}

func (m *mockStore) InsertSubmission(ctx context.Context, submission *entities.QuizSubmission) uuid.UUID {
	return m.Called(ctx, submission).Get(0).(uuid.UUID)
}

func (m *mockStore) UpdateSubmission(ctx context.Context, id uuid.UUID, update entities.SubmissionUpdate) bool {
	return m.Called(ctx, id, update).Bool(0)
}

func (m *mockStore) UpdateSubmissionsByEmail(ctx context.Context, email string, update entities.SubmissionUpdate) bool {
	return m.Called(ctx, email, update).Bool(0)
}

func (m *mockStore) ListRetryable(ctx context.Context, since time.Time, maxRetries int) ([]entities.QuizSubmission, error) {
	args := m.Called(ctx, since, maxRetries)
	rows, _ := args.Get(0).([]entities.QuizSubmission)
	return rows, args.Error(1)
}

func (m *mockStore) InsertPurchase(ctx context.Context, purchase *entities.PurchaseRecord) bool {
	return m.Called(ctx, purchase).Bool(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendReport(ctx context.Context, email string, r entities.Report) notification.Delivery {
	return m.Called(ctx, email, r).Get(0).(notification.Delivery)
}

func (m *mockNotifier) SendSummary(ctx context.Context, email string) {
	m.Called(ctx, email)
}

func (m *mockNotifier) SendPurchaseWelcome(ctx context.Context, email, name string) notification.Delivery {
	return m.Called(ctx, email, name).Get(0).(notification.Delivery)
}

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) Verify(payload []byte, signature string) (stripe.Event, error) {
	args := m.Called(payload, signature)
	return args.Get(0).(stripe.Event), args.Error(1)
}

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) GenerateReport(ctx context.Context, answers map[string]string) (string, error) {
	args := m.Called(ctx, answers)
	return args.String(0), args.Error(1)
}

type mockSubmitter struct {
	mock.Mock
}

func (m *mockSubmitter) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	args := m.Called(ctx, in)
	res, _ := args.Get(0).(*SubmitResult)
	return res, args.Error(1)
}

type mockProber struct {
	mock.Mock
}

func (m *mockProber) Ping(ctx context.Context) (*payment.ProbeResult, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*payment.ProbeResult)
	return res, args.Error(1)
}

// memorySessions is a map-backed ISessionStore.
type memorySessions struct {
	data map[string]quiz.Session
}

func newMemorySessions() *memorySessions {
	return &memorySessions{data: map[string]quiz.Session{}}
}

func (m *memorySessions) Get(_ context.Context, id string) (*quiz.Session, error) {
	s, ok := m.data[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	answers := make(map[string]string, len(s.Answers))
	for k, v := range s.Answers {
		answers[k] = v
	}
	s.Answers = answers
	return &s, nil
}

func (m *memorySessions) Save(_ context.Context, s *quiz.Session) error {
	m.data[s.ID] = *s
	return nil
}

func (m *memorySessions) Delete(_ context.Context, id string) error {
	delete(m.data, id)
	return nil
}

var (
	fixedNow  = time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	realSend  = notification.Delivery{Delivered: true, ProviderMessageID: "msg_1"}
	simulated = notification.Delivery{Delivered: true, Simulated: true}
)

func clock() time.Time { return fixedNow }
