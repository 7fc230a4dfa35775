package notification

import (
	"context"
	"errors"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/config"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/credentials"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/entities"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/report"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/logger"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/metrics"
)

const (
	SummarySubject = "Your AI App Quiz Report is Ready 🚀"
	WelcomeSubject = "🎉 Welcome to One App Per Day - Your Guide is Ready!"
)

// Delivery is what the caller learns about a send. Delivered is always true:
// a missing credential or a provider failure is reported through Simulated
// and Err instead of an error return.
type Delivery struct {
	Delivered         bool
	ProviderMessageID string
	Simulated         bool
	Err               error
}

// Real reports whether the provider accepted the message.
func (d Delivery) Real() bool {
	return d.Delivered && !d.Simulated && d.Err == nil
}

// Options carries the sender identity and the links embedded in emails.
type Options struct {
	From     string
	OfferURL string
	GuideURL string
}

// Client is the notification client used by the quiz flow and the webhook.
type Client struct {
	mailer     Mailer
	configured bool
	opts       Options
	log        logger.Logger
	metrics    *metrics.Metrics
}

// NewClient builds a client over a mailer. configured is false when the
// provider credential did not classify as valid; sends are then simulated.
func NewClient(mailer Mailer, configured bool, opts Options, log logger.Logger, m *metrics.Metrics) *Client {
	provider := "none"
	if mailer != nil {
		provider = mailer.Name()
	}
	if mailer == nil {
		configured = false
	}
	return &Client{
		mailer:     mailer,
		configured: configured,
		opts:       opts,
		log:        log.WithFields(map[string]interface{}{"provider": provider}),
		metrics:    m,
	}
}

// NewFromConfig picks the provider from EMAIL_PROVIDER and classifies its credential.
func NewFromConfig(ctx context.Context, cfg config.EmailConfig, log logger.Logger, m *metrics.Metrics) *Client {
	opts := Options{From: cfg.From, OfferURL: cfg.OfferURL, GuideURL: cfg.GuideURL}

	if cfg.Provider == "ses" {
		opts.From = cfg.SESFrom
		region := credentials.Classify(cfg.AWSRegion, credentials.AWSRegion)
		if !region.IsValid() || cfg.SESFrom == "" {
			log.Warn("SES not configured, emails will be simulated", map[string]interface{}{
				"aws_region": region.String(),
			})
			return NewClient(nil, false, opts, log, m)
		}
		mailer, err := NewSESMailer(ctx, cfg.AWSRegion)
		if err != nil {
			log.WithError(err).Warn("SES client unavailable, emails will be simulated", nil)
			return NewClient(nil, false, opts, log, m)
		}
		return NewClient(mailer, true, opts, log, m)
	}

	status := credentials.Classify(cfg.ResendAPIKey, credentials.ResendAPIKey)
	if !status.IsValid() {
		log.Warn("Resend API key not valid, emails will be simulated", map[string]interface{}{
			"resend_api_key": status.String(),
		})
		return NewClient(nil, false, opts, log, m)
	}
	return NewClient(NewResendMailer(cfg.ResendAPIKey), true, opts, log, m)
}

// IsConfigured reports whether sends reach a real provider.
func (c *Client) IsConfigured() bool {
	return c.configured
}

// Send never fails from the caller's point of view.
func (c *Client) Send(ctx context.Context, kind string, msg Message) Delivery {
	if msg.From == "" {
		msg.From = c.opts.From
	}
	fields := map[string]interface{}{
		"kind":    kind,
		"to":      msg.To,
		"subject": msg.Subject,
	}

	if !c.configured {
		c.log.Info("📧 Email sent (development mode)", fields)
		c.metrics.IncEmail(kind, "simulated")
		return Delivery{Delivered: true, Simulated: true}
	}

	id, err := c.mailer.Send(ctx, msg)
	if err != nil {
		c.log.WithError(err).Error("Email provider call failed", fields)
		c.metrics.IncEmail(kind, "failed")
		return Delivery{Delivered: true, Err: err}
	}

	fields["message_id"] = id
	c.log.Info("Email sent", fields)
	c.metrics.IncEmail(kind, "sent")
	return Delivery{Delivered: true, ProviderMessageID: id}
}

// SendReport emails the personalized report.
func (c *Client) SendReport(ctx context.Context, email string, r entities.Report) Delivery {
	html, err := render(reportTemplate, reportData{
		Email:    email,
		Income:   report.FormatThousands(r.MonthlyIncome),
		OfferURL: c.opts.OfferURL,
		Report:   r,
	})
	if err != nil {
		c.log.WithError(err).Error("Report email not rendered", map[string]interface{}{"to": email})
		return Delivery{Delivered: true, Err: err}
	}

	delivery := c.Send(ctx, "report", Message{
		To:      email,
		Subject: reportSubject(r),
		HTML:    html,
		Text:    reportText(r, c.opts.OfferURL),
	})
	if delivery.Simulated {
		c.log.Debug("Report content", map[string]interface{}{
			"badge":      r.Badge,
			"income":     r.MonthlyIncome,
			"quick_idea": r.QuickIdea,
		})
	}
	return delivery
}

// SendSummary is skipped entirely without a valid credential.
func (c *Client) SendSummary(ctx context.Context, email string) {
	if !c.configured {
		c.log.Debug("Email provider not configured, skipping summary email", map[string]interface{}{"to": email})
		return
	}

	html, err := render(summaryTemplate, struct{ OfferURL string }{c.opts.OfferURL})
	if err != nil {
		c.log.WithError(err).Warn("Summary email not rendered", nil)
		return
	}

	c.Send(ctx, "summary", Message{
		To:      email,
		Subject: SummarySubject,
		HTML:    html,
		Text:    summaryText(c.opts.OfferURL),
	})
}

// SendPurchaseWelcome sends the guide link after a completed checkout.
func (c *Client) SendPurchaseWelcome(ctx context.Context, email, name string) Delivery {
	if name == "" {
		name = "there"
	}
	html, err := render(welcomeTemplate, struct{ Name, GuideURL string }{name, c.opts.GuideURL})
	if err != nil {
		return Delivery{Delivered: true, Err: err}
	}

	return c.Send(ctx, "welcome", Message{
		To:      email,
		Subject: WelcomeSubject,
		HTML:    html,
		Text:    welcomeText(name, c.opts.GuideURL),
	})
}

// ErrorMessage flattens a delivery failure for the error_log column.
func (d Delivery) ErrorMessage() string {
	switch {
	case d.Err != nil:
		return d.Err.Error()
	case d.Simulated:
		return errSimulated.Error()
	}
	return ""
}

var errSimulated = errors.New("email provider not configured, delivery simulated")
