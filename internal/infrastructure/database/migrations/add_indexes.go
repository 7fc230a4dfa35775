package migrations

import (
	"gorm.io/gorm"
)

// AddIndexes adds the indexes used by the webhook and the retry sweep
func AddIndexes(db *gorm.DB) error {
	// Webhook marks every submission of a buyer by email
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_quiz_responses_email ON quiz_responses (email)").Error; err != nil {
		return err
	}
	// Retry sweep filters on status and creation window
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_quiz_responses_status_created_at ON quiz_responses (report_status, created_at)").Error; err != nil {
		return err
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_purchases_email ON purchases (email)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_purchases_stripe_session_id ON purchases (stripe_session_id)").Error; err != nil {
		return err
	}

	return nil
}
