package middleware

import (
	"strconv"
	"time"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/logger"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/metrics"
	"github.com/gofiber/fiber/v2"
)

// RequestLogger mede o tempo de resposta de cada rota e registra no log e no histograma
func RequestLogger(log logger.Logger, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()
		if err != nil {
			// let the app error handler write the response so the status is final
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		duration := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path

		m.ObserveRequest(c.Method(), route, strconv.Itoa(status), duration.Seconds())

		fields := map[string]interface{}{
			"method":      c.Method(),
			"path":        c.Path(),
			"route":       route,
			"status":      status,
			"duration_ms": duration.Milliseconds(),
			"request_id":  c.GetRespHeader(fiber.HeaderXRequestID),
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			log.Error("Request failed", fields)
		case status >= fiber.StatusBadRequest:
			log.Warn("Request rejected", fields)
		default:
			log.Info("Request completed", fields)
		}
		return nil
	}
}
