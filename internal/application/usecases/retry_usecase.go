package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/config"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/apperrors"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/entities"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/report"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/logger"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/metrics"
)

const MsgDatabaseError = "Database error"

// SweepResult summarizes one retry run.
type SweepResult struct {
	Processed int    `json:"processed"`
	Sent      int    `json:"sent"`
	Message   string `json:"message"`
}

// RetryUseCase resends reports whose first delivery failed. Two concurrent
// runs may pick up the same rows.
type RetryUseCase struct {
	store       ISubmissionStore
	notifier    INotifier
	writer      IReportWriter
	maxAttempts int
	window      time.Duration
	log         logger.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
}

// NewRetryUseCase cria uma nova instância do caso de uso de reenvio. writer pode ser nil
func NewRetryUseCase(store ISubmissionStore, notifier INotifier, writer IReportWriter, cfg config.RetryConfig, log logger.Logger, m *metrics.Metrics) *RetryUseCase {
	return &RetryUseCase{
		store:       store,
		notifier:    notifier,
		writer:      writer,
		maxAttempts: cfg.MaxAttempts,
		window:      cfg.Window,
		log:         log,
		metrics:     m,
		now:         time.Now,
	}
}

// Run processes every failed submission inside the retry window.
func (uc *RetryUseCase) Run(ctx context.Context) (*SweepResult, error) {
	since := uc.now().Add(-uc.window)
	rows, err := uc.store.ListRetryable(ctx, since, uc.maxAttempts)
	if err != nil {
		uc.log.Error("Failed to list retryable submissions", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, apperrors.Database(MsgDatabaseError, err)
	}

	result := &SweepResult{}
	for i := range rows {
		if ctx.Err() != nil {
			break
		}
		if !rows[i].ReportStatus.CanTransitionTo(entities.StatusSent) {
			uc.log.Warn("Skipping submission that is not retryable", map[string]interface{}{
				"submission_id": rows[i].ID.String(),
				"report_status": string(rows[i].ReportStatus),
			})
			uc.metrics.IncSweepReport("skipped")
			continue
		}
		result.Processed++
		if uc.retry(ctx, rows[i]) {
			result.Sent++
		}
	}
	result.Message = fmt.Sprintf("Processed %d failed reports, %d sent successfully", result.Processed, result.Sent)

	uc.log.Info("Retry sweep finished", map[string]interface{}{
		"processed": result.Processed,
		"sent":      result.Sent,
	})
	return result, nil
}

func (uc *RetryUseCase) retry(ctx context.Context, row entities.QuizSubmission) bool {
	r, regenerated := uc.reportFor(ctx, row)

	var update entities.SubmissionUpdate
	if regenerated {
		text := r.FullReport
		update.ReportText = &text
	}

	delivery := uc.notifier.SendReport(ctx, row.Email, r)
	if delivery.Real() {
		status := entities.StatusSent
		income := r.MonthlyIncome
		sentAt := uc.now().UTC()
		update.ReportStatus = &status
		update.EstimatedIncome = &income
		update.SentAt = &sentAt
		uc.store.UpdateSubmission(ctx, row.ID, update)
		uc.metrics.IncSweepReport("sent")
		return true
	}

	retries := row.RetryCount + 1
	errorLog := delivery.ErrorMessage()
	update.RetryCount = &retries
	update.ErrorLog = &errorLog
	uc.store.UpdateSubmission(ctx, row.ID, update)
	uc.metrics.IncSweepReport("failed")

	uc.log.Warn("Report retry failed", map[string]interface{}{
		"submission_id": row.ID.String(),
		"retry_count":   retries,
		"error":         errorLog,
	})
	return false
}

// reportFor returns the report to resend and whether its text is new. Stored
// text is reused; otherwise the AI writer is tried before the deterministic
// generator.
func (uc *RetryUseCase) reportFor(ctx context.Context, row entities.QuizSubmission) (entities.Report, bool) {
	if row.ReportText != "" {
		return fromText(row.ReportText, row.EstimatedIncome), false
	}

	answers := row.Answers()
	if uc.writer != nil {
		text, err := uc.writer.GenerateReport(ctx, answers)
		if err == nil {
			return fromText(text, 0), true
		}
		uc.log.Warn("AI report generation failed, using built-in report", map[string]interface{}{
			"submission_id": row.ID.String(),
			"error":         err.Error(),
		})
	}
	return report.Generate(answers), true
}

func fromText(text string, income int) entities.Report {
	if income <= 0 {
		income = report.ExtractIncome(text)
	}
	return entities.Report{
		MonthlyIncome: income,
		Badge:         report.ExtractBadge(text),
		FullReport:    text,
	}
}
