package payment

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/config"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/apperrors"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/cache"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

const validKey = "sk_test_51AbCdEfGhIjKlMnOpQrStUv"

type fakeSessions struct {
	params *stripe.CheckoutSessionParams
	err    error
}

func (f *fakeSessions) New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	return &stripe.CheckoutSession{ID: "cs_test_123", URL: "https://checkout.stripe.com/c/pay/cs_test_123"}, nil
}

type fakeAccounts struct {
	calls int
	err   error
}

func (f *fakeAccounts) Get() (*stripe.Account, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &stripe.Account{ID: "acct_123"}, nil
}

func newTestClient(t *testing.T, key string, development bool, opts ...Option) *Client {
	t.Helper()
	c := cache.New(0)
	t.Cleanup(c.Close)
	cfg := config.StripeConfig{SecretKey: key, SuccessURL: "https://oneappnew.netlify.app/thank-you"}
	return NewClient(cfg, development, c, logger.NewTestLogger(t), nil, opts...)
}

func TestCreateSession_DevelopmentSentinel(t *testing.T) {
	sessions := &fakeSessions{}
	client := newTestClient(t, "sk_test_placeholder", true, WithSessionCreator(sessions))

	result, err := client.CreateSession(context.Background(), CheckoutRequest{Email: "jane@example.com"})

	require.NoError(t, err)
	assert.True(t, result.DevelopmentMode)
	assert.Empty(t, result.URL)
	assert.Nil(t, sessions.params)
}

func TestCreateSession_UnavailableInProduction(t *testing.T) {
	client := newTestClient(t, "", false)

	_, err := client.CreateSession(context.Background(), CheckoutRequest{Email: "jane@example.com"})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.Status)
	assert.Equal(t, apperrors.KindConfiguration, appErr.Kind)
}

func TestCreateSession_RequiresEmail(t *testing.T) {
	client := newTestClient(t, validKey, false, WithSessionCreator(&fakeSessions{}))

	_, err := client.CreateSession(context.Background(), CheckoutRequest{})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "Email is required", appErr.Message)
}

func TestCreateSession_Params(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	sessions := &fakeSessions{}
	client := newTestClient(t, validKey, false, WithSessionCreator(sessions), WithClock(func() time.Time { return now }))

	result, err := client.CreateSession(context.Background(), CheckoutRequest{
		Email:  "jane@example.com",
		Origin: "https://quiz.example.com/",
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", result.SessionID)
	assert.False(t, result.DevelopmentMode)

	p := sessions.params
	require.NotNil(t, p)
	require.Len(t, p.LineItems, 1)
	assert.Equal(t, int64(3200), *p.LineItems[0].PriceData.UnitAmount)
	assert.Equal(t, "usd", *p.LineItems[0].PriceData.Currency)
	assert.Equal(t, GuideName, *p.LineItems[0].PriceData.ProductData.Name)
	assert.Equal(t, int64(1), *p.LineItems[0].Quantity)
	assert.Equal(t, "payment", *p.Mode)
	assert.Equal(t, "https://quiz.example.com/quiz", *p.CancelURL)
	assert.Equal(t, "https://oneappnew.netlify.app/thank-you", *p.SuccessURL)
	assert.Equal(t, now.Add(30*time.Minute).Unix(), *p.ExpiresAt)
	assert.True(t, *p.AllowPromotionCodes)
	assert.False(t, *p.PhoneNumberCollection.Enabled)
	assert.Equal(t, SubmitMessage, *p.CustomText.Submit.Message)
	assert.Equal(t, map[string]string{
		"email":           "jane@example.com",
		"estimatedIncome": "0",
		"badge":           "AI Entrepreneur",
		"product":         "one-app-per-day-guide",
	}, p.Metadata)
}

func TestCreateSession_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{errors.New("Invalid API Key provided: sk_test_****"), "Payment system configuration error. Please contact support."},
		{errors.New("network unreachable"), "Network error. Please check your connection and try again."},
		{errors.New("rate limit exceeded"), "Too many requests. Please wait a moment and try again."},
		{errors.New("card declined"), "Payment processing failed. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			client := newTestClient(t, validKey, false, WithSessionCreator(&fakeSessions{err: tt.err}))

			_, err := client.CreateSession(context.Background(), CheckoutRequest{Email: "jane@example.com"})

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, http.StatusInternalServerError, appErr.Status)
			assert.Equal(t, tt.want, appErr.Message)
		})
	}
}

func TestPing_CachesSuccess(t *testing.T) {
	accounts := &fakeAccounts{}
	client := newTestClient(t, validKey, false, WithAccountGetter(accounts))

	first, err := client.Ping(context.Background())
	require.NoError(t, err)
	second, err := client.Ping(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "acct_123", first.AccountID)
	assert.Equal(t, "Test", first.KeyType)
	assert.Equal(t, "sk_test_...", first.KeyPrefix)
	assert.Same(t, first, second)
	assert.Equal(t, 1, accounts.calls)
}

func TestPing_RejectsMalformedKey(t *testing.T) {
	accounts := &fakeAccounts{}
	client := newTestClient(t, "pk_live_123", false, WithAccountGetter(accounts))

	_, err := client.Ping(context.Background())
	assert.Error(t, err)
	assert.Zero(t, accounts.calls)
}

func TestWebhookVerifier(t *testing.T) {
	secret := "whsec_test_secret"
	payload := []byte(`{"id":"evt_1","object":"event","type":"checkout.session.completed","data":{"object":{"id":"cs_1","object":"checkout.session"}}}`)
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{Payload: payload, Secret: secret})

	verifier := NewWebhookVerifier(secret)

	event, err := verifier.Verify(payload, signed.Header)
	require.NoError(t, err)
	assert.Equal(t, stripe.EventTypeCheckoutSessionCompleted, event.Type)

	_, err = verifier.Verify(payload, "")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "No signature", appErr.Message)

	_, err = verifier.Verify(payload, "t=1,v1=deadbeef")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Invalid signature", appErr.Message)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
}

func TestWebhookVerifier_RejectsUnusableSecret(t *testing.T) {
	payload := []byte(`{"id":"evt_forged","object":"event","type":"checkout.session.completed","data":{"object":{"id":"cs_1","object":"checkout.session","customer_email":"a@b.co"}}}`)

	for _, secret := range []string{"", "   ", "your_stripe_webhook_secret", "not-a-whsec"} {
		t.Run("secret="+secret, func(t *testing.T) {
			signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{Payload: payload, Secret: secret})
			verifier := NewWebhookVerifier(secret)

			event, err := verifier.Verify(signed.Payload, signed.Header)

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperrors.KindConfiguration, appErr.Kind)
			assert.Equal(t, http.StatusServiceUnavailable, appErr.Status)
			assert.Equal(t, WebhookNotConfigured, appErr.Message)
			assert.Empty(t, event.ID)
			assert.False(t, verifier.SecretStatus().IsValid())
		})
	}
}
