// Command retry-sweep runs the failed-report retry once and exits. It is meant
// to be scheduled by cron next to the API.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/application/usecases"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/config"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/ai"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/database"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/logger"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/metrics"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/notification"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/repository"
)

const sweepTimeout = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Error loading configuration: %v", err)
	}
	appLog := logger.NewStructured(cfg.App.LogLevel, cfg.App.LogFormat)
	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	store := repository.NewStore(database.OpenBackend(cfg, appLog), appLog, m)
	if !store.IsAvailable() {
		appLog.Warn("No database configured, nothing to retry", nil)
		return
	}
	notifier := notification.NewFromConfig(ctx, cfg.Email, appLog, m)

	var writer usecases.IReportWriter
	if generator := ai.NewXAIGenerator(cfg.AI); generator != nil {
		writer = generator
	}

	result, err := usecases.NewRetryUseCase(store, notifier, writer, cfg.Retry, appLog, m).Run(ctx)
	if err != nil {
		appLog.Error("Retry sweep failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	appLog.Info(result.Message, map[string]interface{}{
		"processed": result.Processed,
		"sent":      result.Sent,
	})
}
