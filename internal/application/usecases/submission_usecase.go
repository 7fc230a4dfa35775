package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/application/validation"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/apperrors"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/entities"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/quiz"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/report"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/logger"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/metrics"
	"github.com/google/uuid"
)

const (
	MsgInvalidFormat    = "Invalid request format. Please try again."
	MsgRequiredFields   = "Email and responses are required"
	MsgInvalidEmail     = "Please enter a valid email address"
	MsgSubmissionFailed = "Failed to process quiz submission. Please try again."
	MsgReportSent       = "Report generated and sent successfully"
)

// SubmitInput is a validated quiz submission.
type SubmitInput struct {
	Email     string
	Responses map[string]string
	Subscribe bool
}

// SubmitResult is returned to the client after a successful submission.
type SubmitResult struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	EstimatedIncome int    `json:"estimatedIncome"`
	Badge           string `json:"badge"`
	ShowPaywall     bool   `json:"showPaywall"`
}

type submissionBody struct {
	Email     string                 `json:"email"`
	Responses map[string]interface{} `json:"responses"`
	Subscribe bool                   `json:"subscribe"`
}

// SubmissionUseCase runs the quiz submission: store, report, email, status.
type SubmissionUseCase struct {
	store    ISubmissionStore
	notifier INotifier
	log      logger.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewSubmissionUseCase cria uma nova instância do caso de uso de submissão
func NewSubmissionUseCase(store ISubmissionStore, notifier INotifier, log logger.Logger, m *metrics.Metrics) *SubmissionUseCase {
	return &SubmissionUseCase{
		store:    store,
		notifier: notifier,
		log:      log,
		metrics:  m,
		now:      time.Now,
	}
}

// ParseInput decodes and validates a raw submission body.
func ParseInput(body []byte) (SubmitInput, error) {
	var raw submissionBody
	if err := validation.Submission.Decode(body, &raw); err != nil {
		var malformed *validation.ErrMalformed
		if errors.As(err, &malformed) {
			return SubmitInput{}, apperrors.Validation(apperrors.CodeInvalidPayload, MsgInvalidFormat)
		}
		return SubmitInput{}, apperrors.Validation(apperrors.CodeMissingField, MsgRequiredFields)
	}

	responses := make(map[string]string, len(raw.Responses))
	for key, value := range raw.Responses {
		if value == nil {
			responses[key] = ""
			continue
		}
		responses[key] = fmt.Sprint(value)
	}

	return SubmitInput{
		Email:     strings.TrimSpace(raw.Email),
		Responses: responses,
		Subscribe: raw.Subscribe,
	}, nil
}

// Submit persists the answers, generates the report and emails it. Persistence
// and delivery failures never reach the caller.
func (uc *SubmissionUseCase) Submit(ctx context.Context, in SubmitInput) (result *SubmitResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			uc.log.Error("Quiz submission panicked", map[string]interface{}{
				"panic": fmt.Sprint(r),
			})
			uc.metrics.IncSubmission("error")
			result = nil
			err = apperrors.Internal(MsgSubmissionFailed, fmt.Errorf("panic: %v", r))
		}
	}()

	if in.Email == "" || len(in.Responses) == 0 {
		uc.metrics.IncSubmission("rejected")
		return nil, apperrors.Validation(apperrors.CodeMissingField, MsgRequiredFields)
	}
	if !quiz.ValidEmail(in.Email) {
		uc.metrics.IncSubmission("rejected")
		return nil, apperrors.Validation(apperrors.CodeInvalidEmail, MsgInvalidEmail)
	}

	id := uc.store.InsertSubmission(ctx, &entities.QuizSubmission{
		Email:        in.Email,
		Responses:    entities.NewResponses(in.Responses),
		ReportStatus: entities.StatusPending,
		CreatedAt:    uc.now().UTC(),
	})

	r := report.Generate(in.Responses)
	delivery := uc.notifier.SendReport(ctx, in.Email, r)
	uc.notifier.SendSummary(ctx, in.Email)

	if id != uuid.Nil {
		uc.store.UpdateSubmission(ctx, id, uc.statusUpdate(r, delivery.Real(), delivery.ErrorMessage()))
	}

	if in.Subscribe {
		uc.log.Info("User opted in to updates", map[string]interface{}{
			"email": in.Email,
		})
	}

	outcome := "sent"
	if !delivery.Real() {
		outcome = "deferred"
	}
	uc.metrics.IncSubmission(outcome)
	uc.log.Info("Quiz submission processed", map[string]interface{}{
		"submission_id":    id.String(),
		"persisted":        id != uuid.Nil,
		"outcome":          outcome,
		"estimated_income": r.MonthlyIncome,
	})

	return &SubmitResult{
		Success:         true,
		Message:         MsgReportSent,
		EstimatedIncome: r.MonthlyIncome,
		Badge:           r.Badge,
		ShowPaywall:     true,
	}, nil
}

// statusUpdate moves a pending row to sent, or to failed with no report text
// so the retry sweep regenerates and resends it.
func (uc *SubmissionUseCase) statusUpdate(r entities.Report, delivered bool, errorLog string) entities.SubmissionUpdate {
	income := r.MonthlyIncome
	if delivered {
		status := entities.StatusSent
		text := r.FullReport
		sentAt := uc.now().UTC()
		return entities.SubmissionUpdate{
			ReportStatus:    &status,
			EstimatedIncome: &income,
			ReportText:      &text,
			SentAt:          &sentAt,
		}
	}
	status := entities.StatusFailed
	return entities.SubmissionUpdate{
		ReportStatus:    &status,
		EstimatedIncome: &income,
		ErrorLog:        &errorLog,
	}
}
