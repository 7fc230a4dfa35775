package usecases

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/apperrors"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/entities"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

func newWebhookUseCase(t *testing.T, verifier *mockVerifier, store *mockStore, notifier *mockNotifier) *WebhookUseCase {
	uc := NewWebhookUseCase(verifier, store, notifier, logger.NewTestLogger(t), nil)
	uc.now = clock
	return uc
}

func event(eventType stripe.EventType, raw string) stripe.Event {
	return stripe.Event{
		ID:   "evt_1",
		Type: eventType,
		Data: &stripe.EventData{Raw: json.RawMessage(raw)},
	}
}

func TestHandleRejectsUnverifiedPayload(t *testing.T) {
	verifier := &mockVerifier{}
	store := &mockStore{}
	uc := newWebhookUseCase(t, verifier, store, &mockNotifier{})

	verifier.On("Verify", []byte("{}"), "bad").
		Return(stripe.Event{}, apperrors.Signature(apperrors.CodeInvalidSignature, "Invalid signature", nil))

	err := uc.Handle(context.Background(), []byte("{}"), "bad")

	appErr := apperrors.Normalize(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "Invalid signature", appErr.Message)
	store.AssertNotCalled(t, "InsertPurchase", mock.Anything, mock.Anything)
}

func TestHandleCheckoutCompleted(t *testing.T) {
	verifier := &mockVerifier{}
	store := &mockStore{}
	notifier := &mockNotifier{}
	uc := newWebhookUseCase(t, verifier, store, notifier)

	raw := `{
		"id": "cs_test_1",
		"object": "checkout.session",
		"customer_email": "",
		"customer_details": {"email": "buyer@example.com", "name": "Ada"},
		"customer": "cus_9",
		"amount_total": 3200,
		"currency": "usd",
		"metadata": {"badge": "The AI Builder", "estimatedIncome": "4500"}
	}`
	verifier.On("Verify", mock.Anything, "sig").Return(event(stripe.EventTypeCheckoutSessionCompleted, raw), nil)

	store.On("InsertPurchase", mock.Anything, mock.MatchedBy(func(p *entities.PurchaseRecord) bool {
		return p.Email == "buyer@example.com" &&
			p.StripeSessionID == "cs_test_1" &&
			p.AmountPaid == 32 &&
			p.Currency == "usd" &&
			p.PaymentStatus == entities.PaymentCompleted &&
			p.StripeCustomerID != nil && *p.StripeCustomerID == "cus_9" &&
			p.Metadata["badge"] == "The AI Builder"
	})).Return(true)
	store.On("UpdateSubmissionsByEmail", mock.Anything, "buyer@example.com", mock.MatchedBy(func(u entities.SubmissionUpdate) bool {
		return *u.Purchased && u.PurchaseDate.Equal(fixedNow) && *u.StripeSessionID == "cs_test_1"
	})).Return(true)
	notifier.On("SendPurchaseWelcome", mock.Anything, "buyer@example.com", "Ada").Return(realSend)

	require.NoError(t, uc.Handle(context.Background(), []byte(raw), "sig"))
	store.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestHandleCheckoutCompletedDefaults(t *testing.T) {
	verifier := &mockVerifier{}
	store := &mockStore{}
	notifier := &mockNotifier{}
	uc := newWebhookUseCase(t, verifier, store, notifier)

	raw := `{"id": "cs_test_2", "customer_email": "a@b.co"}`
	verifier.On("Verify", mock.Anything, "sig").Return(event(stripe.EventTypeCheckoutSessionCompleted, raw), nil)
	store.On("InsertPurchase", mock.Anything, mock.MatchedBy(func(p *entities.PurchaseRecord) bool {
		return p.AmountPaid == 32 && p.Currency == "usd" && p.StripeCustomerID == nil
	})).Return(true)
	store.On("UpdateSubmissionsByEmail", mock.Anything, "a@b.co", mock.Anything).Return(true)
	notifier.On("SendPurchaseWelcome", mock.Anything, "a@b.co", "there").Return(simulated)

	require.NoError(t, uc.Handle(context.Background(), []byte(raw), "sig"))
	store.AssertExpectations(t)
}

func TestHandleCheckoutWithoutEmailIsAcknowledged(t *testing.T) {
	verifier := &mockVerifier{}
	store := &mockStore{}
	uc := newWebhookUseCase(t, verifier, store, &mockNotifier{})

	verifier.On("Verify", mock.Anything, "sig").
		Return(event(stripe.EventTypeCheckoutSessionCompleted, `{"id":"cs_3"}`), nil)

	require.NoError(t, uc.Handle(context.Background(), nil, "sig"))
	store.AssertNotCalled(t, "InsertPurchase", mock.Anything, mock.Anything)
}

func TestHandlePaymentFailed(t *testing.T) {
	verifier := &mockVerifier{}
	store := &mockStore{}
	uc := newWebhookUseCase(t, verifier, store, &mockNotifier{})

	raw := `{"id":"pi_1","receipt_email":"a@b.co","amount":3200,"currency":"usd"}`
	verifier.On("Verify", mock.Anything, "sig").Return(event(stripe.EventTypePaymentIntentPaymentFailed, raw), nil)
	store.On("InsertPurchase", mock.Anything, mock.MatchedBy(func(p *entities.PurchaseRecord) bool {
		return p.PaymentStatus == entities.PaymentFailed && p.StripeSessionID == "pi_1" && p.AmountPaid == 32
	})).Return(true)

	require.NoError(t, uc.Handle(context.Background(), nil, "sig"))
	store.AssertExpectations(t)
}

func TestHandlePaymentFailedWithoutEmail(t *testing.T) {
	verifier := &mockVerifier{}
	store := &mockStore{}
	uc := newWebhookUseCase(t, verifier, store, &mockNotifier{})

	verifier.On("Verify", mock.Anything, "sig").
		Return(event(stripe.EventTypePaymentIntentPaymentFailed, `{"id":"pi_2","amount":3200}`), nil)

	require.NoError(t, uc.Handle(context.Background(), nil, "sig"))
	store.AssertNotCalled(t, "InsertPurchase", mock.Anything, mock.Anything)
}

func TestHandleIgnoresOtherEvents(t *testing.T) {
	verifier := &mockVerifier{}
	store := &mockStore{}
	uc := newWebhookUseCase(t, verifier, store, &mockNotifier{})

	verifier.On("Verify", mock.Anything, "sig").Return(event("customer.created", `{"id":"cus_1"}`), nil)

	require.NoError(t, uc.Handle(context.Background(), nil, "sig"))
	store.AssertNotCalled(t, "InsertPurchase", mock.Anything, mock.Anything)
}

func TestHandleUndecodableObject(t *testing.T) {
	verifier := &mockVerifier{}
	uc := newWebhookUseCase(t, verifier, &mockStore{}, &mockNotifier{})

	verifier.On("Verify", mock.Anything, "sig").
		Return(event(stripe.EventTypeCheckoutSessionCompleted, `{"amount_total":"lots"}`), nil)

	err := uc.Handle(context.Background(), nil, "sig")
	appErr := apperrors.Normalize(err)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Equal(t, MsgWebhookFailed, appErr.Message)
}
