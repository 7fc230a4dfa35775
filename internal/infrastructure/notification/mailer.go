package notification

import "context"

// Message is one transactional email.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers a message through a provider and returns its message id.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
	Name() string
}
