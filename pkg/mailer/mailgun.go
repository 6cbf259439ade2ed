package mailer

import (
	"context"
	"fmt"

	"github.com/mailgun/mailgun-go/v4"
)

// Mailgun sends transactional mail through the Mailgun HTTP API.
type Mailgun struct {
	client *mailgun.MailgunImpl
	sender string
}

// NewMailgun builds a sender for the given domain. The sender address is
// used as the From header on every message.
func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{client: mailgun.NewMailgun(domain, apiKey), sender: sender}
}

// Send delivers one message. HTML is optional; when empty the message
// goes out as plain text only.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	msg := m.client.NewMessage(m.sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	if _, _, err := m.client.Send(ctx, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
