package routes

import (
	"github.com/PavaniTiago/ai-money-quiz-api/internal/application/usecases"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/config"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/quiz"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/logger"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/metrics"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/payment"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/interfaces/http/handlers"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/interfaces/http/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the infrastructure clients built in main.
type Dependencies struct {
	Config   *config.Config
	Log      logger.Logger
	Metrics  *metrics.Metrics
	Store    usecases.ISubmissionStore
	Backend  string
	Notifier usecases.INotifier
	Email    bool
	Payments *payment.Client
	Verifier usecases.IEventVerifier
	Writer   usecases.IReportWriter
	Sessions usecases.ISessionStore
	Lookup   usecases.EnvLookup
	EnvCount func() int
}

// NewHandlers builds the use cases and their handlers.
func NewHandlers(deps Dependencies) *handlers.Handlers {
	cfg := deps.Config

	// Use Cases
	submissionUseCase := usecases.NewSubmissionUseCase(deps.Store, deps.Notifier, deps.Log, deps.Metrics)
	retryUseCase := usecases.NewRetryUseCase(deps.Store, deps.Notifier, deps.Writer, cfg.Retry, deps.Log, deps.Metrics)
	webhookUseCase := usecases.NewWebhookUseCase(deps.Verifier, deps.Store, deps.Notifier, deps.Log, deps.Metrics)
	wizardUseCase := usecases.NewWizardUseCase(quiz.Default, deps.Sessions, submissionUseCase, deps.Log)
	healthUseCase := usecases.NewHealthUseCase(cfg, deps.Lookup, deps.EnvCount, deps.Payments, deps.Backend, deps.Email, deps.Writer != nil)

	// Handlers
	exposeDetails := cfg.App.IsDevelopment()
	return &handlers.Handlers{
		Quiz:     handlers.NewQuizHandler(submissionUseCase, retryUseCase, deps.Log, exposeDetails),
		Wizard:   handlers.NewWizardHandler(wizardUseCase),
		Checkout: handlers.NewCheckoutHandler(deps.Payments, cfg.App.BaseURL, exposeDetails),
		Webhook:  handlers.NewWebhookHandler(webhookUseCase, exposeDetails),
		Health:   handlers.NewHealthHandler(healthUseCase),
	}
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	middleware.SetupMiddlewares(app, deps.Config.App, deps.Log, deps.Metrics)

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Add ETag support for efficient caching
	app.Use(etag.New())

	h := NewHandlers(deps)
	groups := middleware.SetupRouteGroups(app)

	// Health check
	groups.Public.Get("/health", h.Health.Liveness)
	groups.API.Get("/health", h.Health.Health)
	groups.API.Get("/env-debug", h.Health.EnvDebug)

	if deps.Metrics != nil {
		groups.Public.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	// Quiz routes
	groups.Quiz.Post("/submit", h.Quiz.Submit)
	groups.Quiz.Post("/retry", h.Quiz.Retry)
	setupWizardRoutes(groups.Quiz, h.Wizard)

	// Stripe routes
	RegisterProductRoutes(groups.Stripe, h.Checkout, h.Webhook, h.Health)
}

// setupWizardRoutes configura as rotas do quiz guiado pelo servidor
func setupWizardRoutes(router fiber.Router, wizard *handlers.WizardHandler) {
	router.Get("/questions", wizard.Questions)

	sessions := router.Group("/sessions")
	sessions.Post("/", wizard.Start)
	sessions.Get("/:id", wizard.Get)
	sessions.Post("/:id/answers", wizard.Answer)
	sessions.Post("/:id/next", wizard.Next)
	sessions.Post("/:id/prev", wizard.Prev)
	sessions.Post("/:id/submit", wizard.Submit)
}
