package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/entities"
	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
)

const SupabaseBackendName = "supabase"

const (
	submissionsTable = "quiz_responses"
	purchasesTable   = "purchases"
)

// RestClient is satisfied by both *supabase.Client and *postgrest.Client.
type RestClient interface {
	From(table string) *postgrest.QueryBuilder
}

type SupabaseRepository struct {
	client RestClient
}

// NewSupabaseRepository cria uma nova instância de SupabaseRepository
func NewSupabaseRepository(client RestClient) *SupabaseRepository {
	return &SupabaseRepository{client: client}
}

func (r *SupabaseRepository) Name() string {
	return SupabaseBackendName
}

// InsertSubmission grava uma nova submissão e retorna o id gerado pelo banco
func (r *SupabaseRepository) InsertSubmission(ctx context.Context, submission *entities.QuizSubmission) (uuid.UUID, error) {
	status := submission.ReportStatus
	if status == "" {
		status = entities.StatusPending
	}
	row := map[string]interface{}{
		"email":         submission.Email,
		"responses":     submission.Responses,
		"report_status": string(status),
		"retry_count":   submission.RetryCount,
	}

	// Only the id is decoded; the other returned columns depend on the table's types.
	var inserted []insertedRow
	if _, err := r.client.From(submissionsTable).
		Insert(row, false, "", "representation", "").
		ExecuteTo(&inserted); err != nil {
		return uuid.Nil, err
	}
	if len(inserted) == 0 {
		return uuid.Nil, fmt.Errorf("insert into %s returned no rows", submissionsTable)
	}

	submission.ID = inserted[0].ID
	submission.ReportStatus = status
	return inserted[0].ID, nil
}

type insertedRow struct {
	ID uuid.UUID `json:"id"`
}

// UpdateSubmission aplica uma atualização parcial a uma submissão
func (r *SupabaseRepository) UpdateSubmission(ctx context.Context, id uuid.UUID, update entities.SubmissionUpdate) error {
	if update.IsEmpty() {
		return nil
	}
	_, _, err := r.client.From(submissionsTable).
		Update(update.Columns(), "minimal", "").
		Eq("id", id.String()).
		Execute()
	return err
}

// UpdateSubmissionsByEmail atualiza todas as submissões de um email
func (r *SupabaseRepository) UpdateSubmissionsByEmail(ctx context.Context, email string, update entities.SubmissionUpdate) error {
	if update.IsEmpty() {
		return nil
	}
	_, _, err := r.client.From(submissionsTable).
		Update(update.Columns(), "minimal", "").
		Eq("email", email).
		Execute()
	return err
}

// ListRetryable retorna as submissões com falha elegíveis para reenvio
func (r *SupabaseRepository) ListRetryable(ctx context.Context, since time.Time, maxRetries int) ([]entities.QuizSubmission, error) {
	var submissions []entities.QuizSubmission
	_, err := r.client.From(submissionsTable).
		Select("*", "", false).
		Eq("report_status", string(entities.StatusFailed)).
		Lt("retry_count", strconv.Itoa(maxRetries)).
		Gte("created_at", since.UTC().Format(time.RFC3339)).
		ExecuteTo(&submissions)
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

// InsertPurchase grava um registro de compra
func (r *SupabaseRepository) InsertPurchase(ctx context.Context, purchase *entities.PurchaseRecord) error {
	row := map[string]interface{}{
		"email":              purchase.Email,
		"stripe_session_id":  purchase.StripeSessionID,
		"stripe_customer_id": purchase.StripeCustomerID,
		"amount_paid":        purchase.AmountPaid,
		"currency":           purchase.Currency,
		"product":            purchase.Product,
		"metadata":           purchase.Metadata,
		"payment_status":     string(purchase.PaymentStatus),
	}
	_, _, err := r.client.From(purchasesTable).
		Insert(row, false, "", "minimal", "").
		Execute()
	return err
}
