package payment

import (
	"fmt"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/apperrors"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/credentials"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

// WebhookNotConfigured is returned for every event while the signing secret is not usable.
const WebhookNotConfigured = "Webhook endpoint is not configured"

// WebhookVerifier checks the Stripe-Signature header against the endpoint secret.
type WebhookVerifier struct {
	secret       string
	secretStatus credentials.Classification
}

func NewWebhookVerifier(secret string) *WebhookVerifier {
	return &WebhookVerifier{
		secret:       secret,
		secretStatus: credentials.Classify(secret, credentials.StripeWebhookSecret),
	}
}

// SecretStatus exposes the classification of the signing secret.
func (v *WebhookVerifier) SecretStatus() credentials.Classification {
	return v.secretStatus
}

// Verify returns the parsed event, or an error when the secret is unusable,
// the header is missing or it does not match the payload. Nothing is parsed
// before the secret is known to be valid.
func (v *WebhookVerifier) Verify(payload []byte, signature string) (stripe.Event, error) {
	if !v.secretStatus.IsValid() {
		return stripe.Event{}, apperrors.Configuration(WebhookNotConfigured,
			fmt.Errorf("%s is %s", credentials.StripeWebhookSecret.Name, v.secretStatus))
	}
	if signature == "" {
		return stripe.Event{}, apperrors.Validation(apperrors.CodeMissingSignature, "No signature")
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, v.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return stripe.Event{}, apperrors.Signature(apperrors.CodeInvalidSignature, "Invalid signature", err)
	}
	return event, nil
}
