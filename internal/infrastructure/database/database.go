package database

import (
	"fmt"
	"strings"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/config"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/database/migrations"
	applogger "github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupDatabase(cfg config.DatabaseConfig, logLevel string, log applogger.Logger) (*gorm.DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not defined in the environment")
	}

	gormConfig := &gorm.Config{
		// Writes are single statements
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		Logger:                 logger.Default.LogMode(gormLogLevel(logLevel)),
	}

	db, err := gorm.Open(postgres.Open(cfg.URL), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	RegisterCallbacks(db, log)

	if cfg.AutoMigrate {
		if err := migrations.Migrate(db); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		if err := migrations.AddIndexes(db); err != nil {
			return nil, fmt.Errorf("failed to add indexes: %w", err)
		}
	}

	return db, nil
}

// gormLogLevel maps LOG_LEVEL to gorm's logger. SQL is only traced at debug.
func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.Info
	case "warn", "warning":
		return logger.Warn
	case "silent":
		return logger.Silent
	default:
		return logger.Error
	}
}
