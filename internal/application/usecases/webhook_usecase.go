package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/apperrors"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/entities"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/logger"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/metrics"
	"github.com/stripe/stripe-go/v76"
	"gorm.io/datatypes"
)

const (
	MsgWebhookFailed = "Webhook handler failed"

	defaultAmountPaid = 32.0
	defaultCurrency   = "usd"
	defaultName       = "there"
)

// WebhookUseCase records purchases announced by signed payment events.
type WebhookUseCase struct {
	verifier IEventVerifier
	store    ISubmissionStore
	notifier INotifier
	log      logger.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewWebhookUseCase cria uma nova instância do caso de uso de webhook
func NewWebhookUseCase(verifier IEventVerifier, store ISubmissionStore, notifier INotifier, log logger.Logger, m *metrics.Metrics) *WebhookUseCase {
	return &WebhookUseCase{
		verifier: verifier,
		store:    store,
		notifier: notifier,
		log:      log,
		metrics:  m,
		now:      time.Now,
	}
}

// Handle verifies the payload and applies the event. A nil return means the
// event is acknowledged, including event types that are ignored.
func (uc *WebhookUseCase) Handle(ctx context.Context, payload []byte, signature string) error {
	event, err := uc.verifier.Verify(payload, signature)
	if err != nil {
		uc.metrics.IncWebhook("unverified", "rejected")
		uc.log.Warn("Webhook signature rejected", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	eventType := string(event.Type)
	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		err = uc.checkoutCompleted(ctx, event)
	case stripe.EventTypePaymentIntentPaymentFailed:
		err = uc.paymentFailed(ctx, event)
	default:
		uc.log.Info("Unhandled webhook event type", map[string]interface{}{
			"event_id":   event.ID,
			"event_type": eventType,
		})
		uc.metrics.IncWebhook(eventType, "ignored")
		return nil
	}

	if err != nil {
		uc.metrics.IncWebhook(eventType, "error")
		uc.log.Error("Webhook handler failed", map[string]interface{}{
			"event_id":   event.ID,
			"event_type": eventType,
			"error":      err.Error(),
		})
		return apperrors.Internal(MsgWebhookFailed, err)
	}
	uc.metrics.IncWebhook(eventType, "handled")
	return nil
}

func (uc *WebhookUseCase) checkoutCompleted(ctx context.Context, event stripe.Event) error {
	var cs stripe.CheckoutSession
	if err := decodeObject(event, &cs); err != nil {
		return err
	}

	email := cs.CustomerEmail
	name := ""
	if cs.CustomerDetails != nil {
		if email == "" {
			email = cs.CustomerDetails.Email
		}
		name = cs.CustomerDetails.Name
	}
	if email == "" {
		uc.log.Warn("Completed checkout has no customer email", map[string]interface{}{
			"session_id": cs.ID,
		})
		return nil
	}

	amount := defaultAmountPaid
	if cs.AmountTotal > 0 {
		amount = float64(cs.AmountTotal) / 100
	}
	currency := string(cs.Currency)
	if currency == "" {
		currency = defaultCurrency
	}

	purchase := &entities.PurchaseRecord{
		Email:           email,
		StripeSessionID: cs.ID,
		AmountPaid:      amount,
		Currency:        currency,
		Product:         entities.ProductGuide,
		Metadata:        metadataMap(cs.Metadata),
		PaymentStatus:   entities.PaymentCompleted,
		CreatedAt:       uc.now().UTC(),
	}
	if cs.Customer != nil && cs.Customer.ID != "" {
		customerID := cs.Customer.ID
		purchase.StripeCustomerID = &customerID
	}
	uc.store.InsertPurchase(ctx, purchase)

	purchased := true
	purchaseDate := uc.now().UTC()
	sessionID := cs.ID
	uc.store.UpdateSubmissionsByEmail(ctx, email, entities.SubmissionUpdate{
		Purchased:       &purchased,
		PurchaseDate:    &purchaseDate,
		StripeSessionID: &sessionID,
	})

	if name == "" {
		name = defaultName
	}
	uc.notifier.SendPurchaseWelcome(ctx, email, name)

	uc.log.Info("Purchase recorded", map[string]interface{}{
		"session_id": cs.ID,
		"email":      email,
		"amount":     amount,
	})
	return nil
}

func (uc *WebhookUseCase) paymentFailed(ctx context.Context, event stripe.Event) error {
	var pi stripe.PaymentIntent
	if err := decodeObject(event, &pi); err != nil {
		return err
	}
	if pi.ReceiptEmail == "" {
		return nil
	}

	currency := string(pi.Currency)
	if currency == "" {
		currency = defaultCurrency
	}
	uc.store.InsertPurchase(ctx, &entities.PurchaseRecord{
		Email:           pi.ReceiptEmail,
		StripeSessionID: pi.ID,
		AmountPaid:      float64(pi.Amount) / 100,
		Currency:        currency,
		Product:         entities.ProductGuide,
		PaymentStatus:   entities.PaymentFailed,
		CreatedAt:       uc.now().UTC(),
	})

	uc.log.Warn("Payment failed", map[string]interface{}{
		"payment_intent": pi.ID,
		"email":          pi.ReceiptEmail,
	})
	return nil
}

func decodeObject(event stripe.Event, out interface{}) error {
	if event.Data == nil || len(event.Data.Raw) == 0 {
		return errors.New("event has no data object")
	}
	return json.Unmarshal(event.Data.Raw, out)
}

func metadataMap(in map[string]string) datatypes.JSONMap {
	if len(in) == 0 {
		return nil
	}
	out := make(datatypes.JSONMap, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
