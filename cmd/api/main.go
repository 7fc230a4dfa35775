package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/config"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/ai"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/cache"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/database"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/logger"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/metrics"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/notification"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/payment"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/repository"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/session"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/interfaces/http/handlers"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/interfaces/http/routes"

	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Error loading configuration: %v", err)
	}

	appLog := logger.NewStructured(cfg.App.LogLevel, cfg.App.LogFormat)
	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Persistence
	backend := database.OpenBackend(cfg, appLog)
	store := repository.NewStore(backend, appLog, m)

	// Providers
	notifier := notification.NewFromConfig(ctx, cfg.Email, appLog, m)

	probeCache := cache.New(time.Minute)
	defer probeCache.Close()
	payments := payment.NewClient(cfg.Stripe, cfg.App.IsDevelopment(), probeCache, appLog, m)

	sessions := session.NewStore(ctx, cfg.Session, appLog)
	defer sessions.Close()

	verifier := payment.NewWebhookVerifier(cfg.Stripe.WebhookSecret)

	deps := routes.Dependencies{
		Config:   cfg,
		Log:      appLog,
		Metrics:  m,
		Store:    store,
		Backend:  store.Backend(),
		Notifier: notifier,
		Email:    notifier.IsConfigured(),
		Payments: payments,
		Verifier: verifier,
		Sessions: sessions,
		Lookup:   os.LookupEnv,
		EnvCount: func() int { return len(os.Environ()) },
	}
	if generator := ai.NewXAIGenerator(cfg.AI); generator != nil {
		deps.Writer = generator
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: handlers.ErrorHandler(appLog),
		// Desabilitado modo Prefork pois causa instabilidade no container
		Prefork:      false,
		BodyLimit:    1 * 1024 * 1024,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	})

	routes.SetupRoutes(app, deps)

	appLog.Info("Service configured", map[string]interface{}{
		"environment": cfg.App.Environment,
		"persistence": store.Backend(),
		"email":       notifier.IsConfigured(),
		"payments":    payments.KeyStatus().String(),
		"webhook":     verifier.SecretStatus().String(),
		"ai":          deps.Writer != nil,
	})

	go func() {
		<-ctx.Done()
		appLog.Info("Shutting down server", nil)
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			appLog.Error("Server shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	appLog.Info("🚀 Server is running", map[string]interface{}{"port": cfg.App.Port})
	if err := app.Listen(":" + cfg.App.Port); err != nil {
		appLog.Error("Server stopped", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}
