package middleware

import (
	"github.com/PavaniTiago/ai-money-quiz-api/internal/config"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/logger"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const defaultAllowOrigins = "http://localhost:3000"

func SetupMiddlewares(app *fiber.App, cfg config.AppConfig, log logger.Logger, m *metrics.Metrics) {
	app.Use(requestid.New())
	app.Use(RequestLogger(log, m))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: cfg.IsDevelopment(),
	}))

	origins := cfg.AllowOrigins
	if origins == "" {
		origins = defaultAllowOrigins
	}
	// CORS configuration
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Stripe-Signature",
		AllowCredentials: origins != "*",
		MaxAge:           300, // 5 minutes
	}))
}

// RouteGroups define os grupos de rotas da API
type RouteGroups struct {
	Public fiber.Router
	API    fiber.Router
	Quiz   fiber.Router
	Stripe fiber.Router
}

// SetupRouteGroups configura os grupos de rotas
func SetupRouteGroups(app *fiber.App) RouteGroups {
	public := app.Group("/")
	api := app.Group("/api")

	return RouteGroups{
		Public: public,
		API:    api,
		Quiz:   api.Group("/quiz"),
		Stripe: api.Group("/stripe"),
	}
}
