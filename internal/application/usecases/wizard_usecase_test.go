package usecases

import (
	"context"
	"net/http"
	"testing"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/apperrors"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/quiz"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var smallCatalogue = quiz.Catalogue{
	{
		ID:    "basics",
		Title: "Basics",
		Questions: []quiz.Question{
			{ID: "q1", Question: "Pick one", Type: quiz.SingleChoice, Options: []string{"A", "B"}},
			{ID: "q2", Question: "Say something", Type: quiz.FreeText},
		},
	},
}

func newWizardUseCase(t *testing.T, submitter *mockSubmitter) (*WizardUseCase, *memorySessions) {
	sessions := newMemorySessions()
	uc := NewWizardUseCase(smallCatalogue, sessions, submitter, logger.NewTestLogger(t))
	uc.now = clock
	uc.newID = func() string { return "session-1" }
	return uc, sessions
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, status, apperrors.Normalize(err).Status)
}

func TestWizardStartAndGet(t *testing.T) {
	uc, _ := newWizardUseCase(t, &mockSubmitter{})
	ctx := context.Background()

	v, err := uc.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, "session-1", v.Session.ID)
	assert.Equal(t, "q1", v.Question.ID)
	assert.Equal(t, "basics", v.Block.ID)
	assert.Equal(t, 2, v.TotalQuestions)
	assert.Zero(t, v.Progress)

	got, err := uc.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, v.Session.ID, got.Session.ID)

	_, err = uc.Get(ctx, "missing")
	requireStatus(t, err, http.StatusNotFound)
}

func TestWizardNavigation(t *testing.T) {
	uc, _ := newWizardUseCase(t, &mockSubmitter{})
	ctx := context.Background()
	_, err := uc.Start(ctx)
	require.NoError(t, err)

	_, err = uc.Next(ctx, "session-1")
	requireStatus(t, err, http.StatusConflict)

	_, err = uc.Answer(ctx, "session-1", "q1", "C")
	requireStatus(t, err, http.StatusBadRequest)

	_, err = uc.Answer(ctx, "session-1", "nope", "A")
	requireStatus(t, err, http.StatusBadRequest)

	v, err := uc.Answer(ctx, "session-1", "q1", "A")
	require.NoError(t, err)
	assert.Equal(t, float64(50), v.Progress)

	v, err = uc.Next(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "q2", v.Question.ID)

	v, err = uc.Prev(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "q1", v.Question.ID)

	_, err = uc.Next(ctx, "session-1")
	require.NoError(t, err)
	_, err = uc.Answer(ctx, "session-1", "q2", "build tools")
	require.NoError(t, err)
	v, err = uc.Next(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, quiz.PhaseEmailGate, v.Session.Phase)
	assert.Nil(t, v.Question)
	assert.Equal(t, float64(100), v.Progress)
}

func gateSession(t *testing.T, uc *WizardUseCase) {
	t.Helper()
	ctx := context.Background()
	_, err := uc.Start(ctx)
	require.NoError(t, err)
	for _, step := range []struct{ id, value string }{{"q1", "B"}, {"q2", "ideas"}} {
		_, err = uc.Answer(ctx, "session-1", step.id, step.value)
		require.NoError(t, err)
		_, err = uc.Next(ctx, "session-1")
		require.NoError(t, err)
	}
}

func TestWizardSubmit(t *testing.T) {
	submitter := &mockSubmitter{}
	uc, sessions := newWizardUseCase(t, submitter)
	gateSession(t, uc)

	submitter.On("Submit", mock.Anything, SubmitInput{
		Email:     "a@b.co",
		Responses: map[string]string{"q1": "B", "q2": "ideas"},
		Subscribe: true,
	}).Return(&SubmitResult{Success: true, EstimatedIncome: 1500, Badge: "The AI Explorer", ShowPaywall: true}, nil)

	v, err := uc.Submit(context.Background(), "session-1", "a@b.co", true)
	require.NoError(t, err)
	assert.Equal(t, quiz.PhasePaywall, v.Session.Phase)
	assert.Equal(t, 900, v.SecondsLeft)
	assert.Equal(t, 1500, v.Result.EstimatedIncome)

	stored := sessions.data["session-1"]
	assert.Equal(t, quiz.PhasePaywall, stored.Phase)
	assert.Equal(t, "The AI Explorer", stored.Badge)
	submitter.AssertExpectations(t)
}

func TestWizardSubmitRejectsInvalidEmail(t *testing.T) {
	submitter := &mockSubmitter{}
	uc, _ := newWizardUseCase(t, submitter)
	gateSession(t, uc)

	_, err := uc.Submit(context.Background(), "session-1", "nope", false)
	requireStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, MsgInvalidEmail, apperrors.Normalize(err).Message)
	submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestWizardSubmitBeforeGate(t *testing.T) {
	submitter := &mockSubmitter{}
	uc, _ := newWizardUseCase(t, submitter)
	_, err := uc.Start(context.Background())
	require.NoError(t, err)

	_, err = uc.Submit(context.Background(), "session-1", "a@b.co", false)
	requireStatus(t, err, http.StatusConflict)
}

func TestWizardQuestions(t *testing.T) {
	uc := NewWizardUseCase(quiz.Default, newMemorySessions(), &mockSubmitter{}, logger.NewNoOpLogger())
	views := uc.Questions()
	require.Len(t, views, 4)
	assert.Equal(t, "The Tinkerer", views[0].Badge.Name)
}
