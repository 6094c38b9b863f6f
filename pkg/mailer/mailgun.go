package mailer

import (
	"context"
	"fmt"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

const (
	sendTimeout = 10 * time.Second
	// Tag groups GiftLink mail in the Mailgun dashboard.
	Tag = "giftlink"
)

// Mailgun sends GiftLink transactional mail through one Mailgun domain.
type Mailgun struct {
	Domain string
	Sender string

	client *mg.MailgunImpl
}

// NewMailgun builds a sender. An empty sender falls back to
// "GiftLink <no-reply@domain>".
func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{
		Domain: domain,
		Sender: senderOrDefault(sender, domain),
		client: mg.NewMailgun(domain, apiKey),
	}
}

func senderOrDefault(sender, domain string) string {
	if sender != "" {
		return sender
	}
	return fmt.Sprintf("GiftLink <no-reply@%s>", domain)
}

// Send delivers one message; html is optional.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	msg := m.client.NewMessage(m.Sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	if err := msg.AddTag(Tag); err != nil {
		return fmt.Errorf("tag message: %w", err)
	}
	c, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if _, _, err := m.client.Send(c, msg); err != nil {
		return fmt.Errorf("mailgun send to %s: %w", to, err)
	}
	return nil
}
