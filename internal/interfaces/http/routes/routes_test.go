package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/config"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/cache"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/logger"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/metrics"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/notification"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/payment"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/repository"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/session"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/interfaces/http/handlers"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76/webhook"
)

const testWebhookSecret = "whsec_test_secret"

func newDevApp(t *testing.T) *fiber.App {
	return newTestApp(t, "development", testWebhookSecret)
}

func newTestApp(t *testing.T, environment, webhookSecret string) *fiber.App {
	log := logger.NewTestLogger(t)
	m := metrics.New()
	cfg := &config.Config{
		App:    config.AppConfig{Environment: environment, BaseURL: "http://localhost:3000"},
		Stripe: config.StripeConfig{WebhookSecret: webhookSecret},
		Retry:  config.RetryConfig{MaxAttempts: 3, Window: 24 * time.Hour},
	}
	probeCache := cache.New(time.Minute)
	sessionCache := cache.New(time.Minute)
	t.Cleanup(func() {
		probeCache.Close()
		sessionCache.Close()
	})

	store := repository.NewStore(nil, log, m)
	notifier := notification.NewClient(nil, false, notification.Options{From: "welcome@1appday.com"}, log, m)

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler(log)})
	SetupRoutes(app, Dependencies{
		Config:   cfg,
		Log:      log,
		Metrics:  m,
		Store:    store,
		Backend:  store.Backend(),
		Notifier: notifier,
		Email:    notifier.IsConfigured(),
		Payments: payment.NewClient(cfg.Stripe, cfg.App.IsDevelopment(), probeCache, log, m),
		Verifier: payment.NewWebhookVerifier(cfg.Stripe.WebhookSecret),
		Sessions: session.NewMemoryStore(sessionCache, time.Hour),
		Lookup:   func(string) (string, bool) { return "", false },
		EnvCount: func() int { return 0 },
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, body string, headers map[string]string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestSubmitWithoutProviders(t *testing.T) {
	app := newDevApp(t)

	status, body := call(t, app, http.MethodPost, "/api/quiz/submit",
		`{"email":"a@b.co","responses":{"profession":"Entrepreneur"},"subscribe":false}`, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"estimatedIncome":3200`)
	assert.Contains(t, body, `"showPaywall":true`)

	status, body = call(t, app, http.MethodPost, "/api/quiz/submit",
		`{"email":"invalid","responses":{"profession":"Entrepreneur"}}`, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "Please enter a valid email address")
}

func TestRetryWithoutDatabase(t *testing.T) {
	app := newDevApp(t)

	status, body := call(t, app, http.MethodPost, "/api/quiz/retry", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Processed 0 failed reports, 0 sent successfully")
}

func TestCheckoutDevelopmentMode(t *testing.T) {
	app := newDevApp(t)

	status, body := call(t, app, http.MethodPost, "/api/stripe/checkout", `{"email":"a@b.co","estimatedIncome":3200}`, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"developmentMode":true`)
	assert.Contains(t, body, `"url":null`)
}

func TestWebhookSignature(t *testing.T) {
	app := newDevApp(t)

	status, body := call(t, app, http.MethodPost, "/api/stripe/webhook", `{}`, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "No signature")

	status, body = call(t, app, http.MethodPost, "/api/stripe/webhook", `{}`, map[string]string{"Stripe-Signature": "t=1,v1=bad"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "Invalid signature")

	payload := []byte(`{
		"id": "evt_test_1",
		"object": "event",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_test_1", "object": "checkout.session", "customer_email": "a@b.co", "amount_total": 3200, "currency": "usd"}}
	}`)
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{Payload: payload, Secret: testWebhookSecret})

	status, body = call(t, app, http.MethodPost, "/api/stripe/webhook", string(payload), map[string]string{"Stripe-Signature": signed.Header})
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"received":true}`, body)
}

func TestWebhookWithoutSigningSecret(t *testing.T) {
	payload := []byte(`{
		"id": "evt_forged",
		"object": "event",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_forged", "object": "checkout.session", "customer_email": "a@b.co"}}
	}`)
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{Payload: payload, Secret: ""})

	for _, env := range []string{"development", "production"} {
		t.Run(env, func(t *testing.T) {
			app := newTestApp(t, env, "")

			status, body := call(t, app, http.MethodPost, "/api/stripe/webhook", string(payload), map[string]string{"Stripe-Signature": signed.Header})
			assert.Equal(t, http.StatusServiceUnavailable, status)
			assert.Contains(t, body, payment.WebhookNotConfigured)
			assert.NotContains(t, body, "received")
		})
	}
}

func TestWizardFlow(t *testing.T) {
	app := newDevApp(t)

	status, body := call(t, app, http.MethodGet, "/api/quiz/questions", "", nil)
	assert.Equal(t, http.StatusOK, status)
	var catalogue struct {
		Blocks []struct {
			Title string `json:"title"`
		} `json:"blocks"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &catalogue))
	require.NotEmpty(t, catalogue.Blocks)
	assert.Equal(t, "Your Background & Habits", catalogue.Blocks[0].Title)

	status, body = call(t, app, http.MethodPost, "/api/quiz/sessions", "", nil)
	require.Equal(t, http.StatusCreated, status)
	assert.Contains(t, body, `"phase":"questions"`)

	status, _ = call(t, app, http.MethodGet, "/api/quiz/sessions/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHealthAndMetrics(t *testing.T) {
	app := newDevApp(t)

	status, body := call(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "healthy")

	status, body = call(t, app, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"persistence":"noop"`)

	status, body = call(t, app, http.MethodGet, "/api/env-debug", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "RESEND_API_KEY is missing")

	status, body = call(t, app, http.MethodGet, "/api/stripe/test", "", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, body, `"success":false`)

	status, body = call(t, app, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "http_request_duration_seconds")
}
