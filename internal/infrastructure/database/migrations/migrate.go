package migrations

import (
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/entities"

	"gorm.io/gorm"
)

// Migrate cria as tabelas do quiz quando o banco é gerenciado por este serviço
func Migrate(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error; err != nil {
		return err
	}
	return db.AutoMigrate(&entities.QuizSubmission{}, &entities.PurchaseRecord{})
}
