package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/apperrors"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/quiz"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/logger"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/session"
	"github.com/google/uuid"
)

const MsgSessionNotFound = "Quiz session not found or expired"

// ISubmitter runs the submission flow at the end of the wizard.
type ISubmitter interface {
	Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error)
}

// WizardView is what clients render for a session.
type WizardView struct {
	Session        *quiz.Session  `json:"session"`
	Block          *quiz.BlockRef `json:"block,omitempty"`
	Question       *quiz.Question `json:"question,omitempty"`
	Progress       float64        `json:"progress"`
	TotalQuestions int            `json:"totalQuestions"`
	SecondsLeft    int            `json:"secondsLeft"`
	Result         *SubmitResult  `json:"result,omitempty"`
}

// WizardUseCase drives server-side quiz sessions.
type WizardUseCase struct {
	catalogue quiz.Catalogue
	sessions  ISessionStore
	submitter ISubmitter
	log       logger.Logger
	now       func() time.Time
	newID     func() string
}

// NewWizardUseCase cria uma nova instância do caso de uso do quiz
func NewWizardUseCase(catalogue quiz.Catalogue, sessions ISessionStore, submitter ISubmitter, log logger.Logger) *WizardUseCase {
	return &WizardUseCase{
		catalogue: catalogue,
		sessions:  sessions,
		submitter: submitter,
		log:       log,
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}
}

// Questions returns the catalogue for client-side rendering.
func (uc *WizardUseCase) Questions() []quiz.BlockView {
	return uc.catalogue.Views()
}

// Start opens a new session at the first question.
func (uc *WizardUseCase) Start(ctx context.Context) (*WizardView, error) {
	s := quiz.NewSession(uc.newID(), uc.now().UTC())
	if err := uc.sessions.Save(ctx, s); err != nil {
		return nil, apperrors.Internal("Failed to start quiz session", err)
	}
	return uc.view(quiz.NewWizard(uc.catalogue, s), nil), nil
}

// Get returns the current view of a session.
func (uc *WizardUseCase) Get(ctx context.Context, id string) (*WizardView, error) {
	w, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.view(w, nil), nil
}

// Answer records an answer without moving.
func (uc *WizardUseCase) Answer(ctx context.Context, id, questionID, value string) (*WizardView, error) {
	return uc.apply(ctx, id, func(w *quiz.Wizard) error {
		return w.Answer(questionID, value, uc.now().UTC())
	})
}

// Next advances to the following question or the email gate.
func (uc *WizardUseCase) Next(ctx context.Context, id string) (*WizardView, error) {
	return uc.apply(ctx, id, func(w *quiz.Wizard) error {
		return w.Next(uc.now().UTC())
	})
}

// Prev steps back one question.
func (uc *WizardUseCase) Prev(ctx context.Context, id string) (*WizardView, error) {
	return uc.apply(ctx, id, func(w *quiz.Wizard) error {
		return w.Prev(uc.now().UTC())
	})
}

// Submit captures the email, runs the submission flow over the session
// answers and opens the paywall.
func (uc *WizardUseCase) Submit(ctx context.Context, id, email string, subscribe bool) (*WizardView, error) {
	w, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := w.SubmitEmail(email, uc.now().UTC()); err != nil {
		return nil, wizardError(err)
	}

	s := w.Session()
	result, err := uc.submitter.Submit(ctx, SubmitInput{
		Email:     s.Email,
		Responses: s.Answers,
		Subscribe: subscribe,
	})
	if err != nil {
		return nil, err
	}

	if err := w.ShowPaywall(result.EstimatedIncome, result.Badge, uc.now().UTC()); err != nil {
		return nil, wizardError(err)
	}
	if err := uc.sessions.Save(ctx, s); err != nil {
		uc.log.Warn("Failed to save quiz session after submission", map[string]interface{}{
			"session_id": id,
			"error":      err.Error(),
		})
	}
	return uc.view(w, result), nil
}

func (uc *WizardUseCase) apply(ctx context.Context, id string, op func(*quiz.Wizard) error) (*WizardView, error) {
	w, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := op(w); err != nil {
		return nil, wizardError(err)
	}
	if err := uc.sessions.Save(ctx, w.Session()); err != nil {
		return nil, apperrors.Internal("Failed to save quiz session", err)
	}
	return uc.view(w, nil), nil
}

func (uc *WizardUseCase) load(ctx context.Context, id string) (*quiz.Wizard, error) {
	s, err := uc.sessions.Get(ctx, id)
	if errors.Is(err, session.ErrNotFound) {
		return nil, apperrors.NotFound(apperrors.CodeSessionNotFound, MsgSessionNotFound)
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to load quiz session", err)
	}
	return quiz.NewWizard(uc.catalogue, s), nil
}

func (uc *WizardUseCase) view(w *quiz.Wizard, result *SubmitResult) *WizardView {
	s := w.Session()
	v := &WizardView{
		Session:        s,
		Progress:       w.Progress(),
		TotalQuestions: uc.catalogue.TotalQuestions(),
		SecondsLeft:    s.SecondsLeft(uc.now().UTC()),
		Result:         result,
	}
	if s.Phase == quiz.PhaseQuestions {
		block, question := w.Current()
		v.Block = &quiz.BlockRef{ID: block.ID, Title: block.Title}
		v.Question = &question
	}
	return v
}

func wizardError(err error) error {
	switch {
	case errors.Is(err, quiz.ErrWrongPhase), errors.Is(err, quiz.ErrUnanswered):
		return apperrors.Conflict(apperrors.CodeInvalidTransition, err.Error())
	case errors.Is(err, quiz.ErrUnknownQuestion), errors.Is(err, quiz.ErrInvalidAnswer):
		return apperrors.Validation(apperrors.CodeInvalidPayload, err.Error())
	case errors.Is(err, quiz.ErrInvalidEmail):
		return apperrors.Validation(apperrors.CodeInvalidEmail, MsgInvalidEmail)
	}
	return apperrors.Normalize(err)
}
