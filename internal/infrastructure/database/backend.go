package database

import (
	"github.com/PavaniTiago/ai-money-quiz-api/internal/config"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/credentials"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/repositories"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/logger"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/repository"
)

// BackendKind names the storage a configuration selects.
type BackendKind string

const (
	BackendSupabase BackendKind = repository.SupabaseBackendName
	BackendPostgres BackendKind = repository.GormBackendName
	BackendNoop     BackendKind = repository.NoopBackendName
)

// SelectBackend prefers Supabase, then a direct Postgres URL, then no storage.
func SelectBackend(cfg *config.Config) BackendKind {
	if credentials.Classify(cfg.Supabase.URL, credentials.SupabaseURL).IsValid() &&
		credentials.Classify(cfg.Supabase.ServiceRoleKey, credentials.SupabaseServiceRoleKey).IsValid() {
		return BackendSupabase
	}
	if credentials.Classify(cfg.Database.URL, credentials.DatabaseURL).IsValid() {
		return BackendPostgres
	}
	return BackendNoop
}

// OpenBackend builds the selected backend. A connection failure degrades to
// the no-op backend so the quiz keeps answering.
func OpenBackend(cfg *config.Config, log logger.Logger) repositories.Backend {
	switch SelectBackend(cfg) {
	case BackendSupabase:
		client, err := NewSupabaseClient(cfg.Supabase)
		if err != nil {
			log.WithError(err).Error("Supabase client unavailable, running without database", nil)
			return repository.NewNoopRepository()
		}
		log.Info("Using Supabase for persistence", nil)
		return repository.NewSupabaseRepository(client)

	case BackendPostgres:
		db, err := SetupDatabase(cfg.Database, cfg.App.LogLevel, log)
		if err != nil {
			log.WithError(err).Error("Database unavailable, running without database", nil)
			return repository.NewNoopRepository()
		}
		log.Info("Using Postgres for persistence", nil)
		return repository.NewGormRepository(db)
	}

	log.Warn("Database credentials not configured, running in development mode", map[string]interface{}{
		"supabase_url": credentials.Classify(cfg.Supabase.URL, credentials.SupabaseURL).String(),
		"database_url": credentials.Classify(cfg.Database.URL, credentials.DatabaseURL).String(),
	})
	return repository.NewNoopRepository()
}
