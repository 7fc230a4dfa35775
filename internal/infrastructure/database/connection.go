package database

import (
	"gorm.io/gorm"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/logger"
)

// ErrorLoggerCallback cria um callback GORM que registra falhas de SQL no logger da aplicação
func ErrorLoggerCallback(log logger.Logger, operation string) func(db *gorm.DB) {
	return func(db *gorm.DB) {
		if db.Error == nil || db.Error == gorm.ErrRecordNotFound {
			return
		}
		log.WithError(db.Error).Warn("SQL statement failed", map[string]interface{}{
			"operation": operation,
			"table":     db.Statement.Table,
		})
	}
}

// RegisterCallbacks registra os callbacks necessários no GORM
func RegisterCallbacks(db *gorm.DB, log logger.Logger) {
	db.Callback().Create().After("gorm:create").Register("app:log_create_error", ErrorLoggerCallback(log, "create"))
	db.Callback().Update().After("gorm:update").Register("app:log_update_error", ErrorLoggerCallback(log, "update"))
	db.Callback().Query().After("gorm:query").Register("app:log_query_error", ErrorLoggerCallback(log, "query"))
}
