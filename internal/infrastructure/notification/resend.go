package notification

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/resend/resend-go/v2"
)

// ResendMailer sends email through the Resend API
type ResendMailer struct {
	client *resend.Client
}

func NewResendMailer(apiKey string) *ResendMailer {
	httpClient := &http.Client{Timeout: 15 * time.Second}
	return NewResendMailerWithClient(resend.NewCustomClient(httpClient, apiKey))
}

func NewResendMailerWithClient(client *resend.Client) *ResendMailer {
	return &ResendMailer{client: client}
}

func (m *ResendMailer) Name() string { return "resend" }

func (m *ResendMailer) Send(ctx context.Context, msg Message) (string, error) {
	sent, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return "", fmt.Errorf("resend API error: %w", err)
	}
	return sent.Id, nil
}
