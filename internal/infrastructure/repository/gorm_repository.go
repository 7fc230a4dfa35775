package repository

import (
	"context"
	"time"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const GormBackendName = "postgres"

type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository cria uma nova instância de GormRepository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Name() string {
	return GormBackendName
}

// InsertSubmission grava uma nova submissão e retorna o id gerado pelo banco
func (r *GormRepository) InsertSubmission(ctx context.Context, submission *entities.QuizSubmission) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(submission).Error; err != nil {
		return uuid.Nil, err
	}
	return submission.ID, nil
}

// UpdateSubmission aplica uma atualização parcial a uma submissão
func (r *GormRepository) UpdateSubmission(ctx context.Context, id uuid.UUID, update entities.SubmissionUpdate) error {
	if update.IsEmpty() {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&entities.QuizSubmission{}).
		Where("id = ?", id).
		Updates(update.Columns()).Error
}

// UpdateSubmissionsByEmail atualiza todas as submissões de um email
func (r *GormRepository) UpdateSubmissionsByEmail(ctx context.Context, email string, update entities.SubmissionUpdate) error {
	if update.IsEmpty() {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&entities.QuizSubmission{}).
		Where("email = ?", email).
		Updates(update.Columns()).Error
}

// ListRetryable retorna as submissões com falha elegíveis para reenvio
func (r *GormRepository) ListRetryable(ctx context.Context, since time.Time, maxRetries int) ([]entities.QuizSubmission, error) {
	var submissions []entities.QuizSubmission
	err := r.db.WithContext(ctx).
		Where("report_status = ? AND retry_count < ? AND created_at >= ?", string(entities.StatusFailed), maxRetries, since.UTC()).
		Order("created_at ASC").
		Find(&submissions).Error
	return submissions, err
}

// InsertPurchase grava um registro de compra
func (r *GormRepository) InsertPurchase(ctx context.Context, purchase *entities.PurchaseRecord) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}
