package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/config"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/apperrors"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/credentials"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/entities"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/cache"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/logger"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/metrics"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/account"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

const (
	GuidePriceCents   = 3200
	GuideCurrency     = "usd"
	GuideName         = "One App Per Day - Complete AI Guide"
	GuideDescription  = "Step-by-step guide to build and launch AI-powered websites in 1 day"
	GuideImage        = "https://oneappperday.com/og-image.png"
	SessionExpiry     = 30 * time.Minute
	SubmitMessage     = "Complete your purchase to get instant access to the guide!"
	DefaultBadge      = "AI Entrepreneur"
	UnavailableReason = "Payment processing is temporarily unavailable. Please try again in a moment."
)

// SessionCreator creates hosted checkout sessions. *session.Client satisfies it.
type SessionCreator interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// AccountGetter retrieves the account owning the key. *account.Client satisfies it.
type AccountGetter interface {
	Get() (*stripe.Account, error)
}

// CheckoutRequest is what the paywall sends when the user buys the guide.
type CheckoutRequest struct {
	Email           string
	EstimatedIncome string
	Badge           string
	Origin          string
}

// CheckoutSession is either a hosted session or the development sentinel.
type CheckoutSession struct {
	SessionID       string
	URL             string
	DevelopmentMode bool
}

// Client wraps the payment provider: checkout sessions and the connectivity probe.
type Client struct {
	sessions    SessionCreator
	accounts    AccountGetter
	secretKey   string
	keyStatus   credentials.Classification
	development bool
	successURL  string
	cache       *cache.Cache
	log         logger.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
}

// Option configures a Client.
type Option func(*Client)

func WithSessionCreator(s SessionCreator) Option {
	return func(c *Client) { c.sessions = s }
}

func WithAccountGetter(a AccountGetter) Option {
	return func(c *Client) { c.accounts = a }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient cria uma nova instância do cliente de pagamentos
func NewClient(cfg config.StripeConfig, development bool, probeCache *cache.Cache, log logger.Logger, m *metrics.Metrics, opts ...Option) *Client {
	c := &Client{
		secretKey:   cfg.SecretKey,
		keyStatus:   credentials.Classify(cfg.SecretKey, credentials.StripeSecretKey),
		development: development,
		successURL:  cfg.SuccessURL,
		cache:       probeCache,
		log:         log,
		metrics:     m,
		now:         time.Now,
	}

	backend := stripe.GetBackend(stripe.APIBackend)
	c.sessions = &session.Client{B: backend, Key: cfg.SecretKey}
	c.accounts = &account.Client{B: backend, Key: cfg.SecretKey}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// KeyStatus exposes the classification of the secret key.
func (c *Client) KeyStatus() credentials.Classification {
	return c.keyStatus
}

// CreateSession creates a hosted checkout session for the guide. Without a
// valid key it returns the development sentinel in development environments
// and a configuration error elsewhere.
func (c *Client) CreateSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	if !c.keyStatus.IsValid() {
		if c.development {
			c.log.Warn("Stripe key not valid, returning development checkout", map[string]interface{}{
				"stripe_secret_key": c.keyStatus.String(),
			})
			c.metrics.IncCheckout("development")
			return &CheckoutSession{DevelopmentMode: true}, nil
		}
		c.metrics.IncCheckout("unavailable")
		return nil, apperrors.Configuration(UnavailableReason, fmt.Errorf("STRIPE_SECRET_KEY is %s", c.keyStatus))
	}

	if strings.TrimSpace(req.Email) == "" {
		return nil, apperrors.Validation(apperrors.CodeMissingField, "Email is required")
	}

	params := c.SessionParams(req)
	params.Context = ctx

	c.log.Info("Creating checkout session", map[string]interface{}{
		"email":            req.Email,
		"estimated_income": req.EstimatedIncome,
		"badge":            req.Badge,
	})

	s, err := c.sessions.New(params)
	if err != nil {
		c.log.WithError(err).Error("Stripe checkout error", map[string]interface{}{"email": req.Email})
		c.metrics.IncCheckout("failed")
		return nil, apperrors.ExternalService(checkoutErrorMessage(err), err)
	}

	c.metrics.IncCheckout("created")
	return &CheckoutSession{SessionID: s.ID, URL: s.URL}, nil
}

// SessionParams builds the fixed single-item checkout for the guide.
func (c *Client) SessionParams(req CheckoutRequest) *stripe.CheckoutSessionParams {
	income := req.EstimatedIncome
	if income == "" {
		income = "0"
	}
	badge := req.Badge
	if badge == "" {
		badge = DefaultBadge
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(GuideCurrency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(GuideName),
						Description: stripe.String(GuideDescription),
						Images:      stripe.StringSlice([]string{GuideImage}),
					},
					UnitAmount: stripe.Int64(GuidePriceCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:                     stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:               stripe.String(c.successURL),
		CancelURL:                stripe.String(strings.TrimRight(req.Origin, "/") + "/quiz"),
		CustomerEmail:            stripe.String(req.Email),
		AllowPromotionCodes:      stripe.Bool(true),
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionAuto)),
		ExpiresAt:                stripe.Int64(c.now().Add(SessionExpiry).Unix()),
		PhoneNumberCollection: &stripe.CheckoutSessionPhoneNumberCollectionParams{
			Enabled: stripe.Bool(false),
		},
		CustomText: &stripe.CheckoutSessionCustomTextParams{
			Submit: &stripe.CheckoutSessionCustomTextSubmitParams{
				Message: stripe.String(SubmitMessage),
			},
		},
	}
	params.AddMetadata("email", req.Email)
	params.AddMetadata("estimatedIncome", income)
	params.AddMetadata("badge", badge)
	params.AddMetadata("product", entities.ProductGuide)

	return params
}

func checkoutErrorMessage(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "Invalid API Key"):
		return "Payment system configuration error. Please contact support."
	case strings.Contains(msg, "network"):
		return "Network error. Please check your connection and try again."
	case strings.Contains(msg, "rate"):
		return "Too many requests. Please wait a moment and try again."
	}
	return "Payment processing failed. Please try again."
}
