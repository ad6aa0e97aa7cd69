package mailer

import (
	"context"
	"errors"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Sender delivers one rendered message. html is optional.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Mailgun sends through the Mailgun HTTP API.
type Mailgun struct {
	client  *mg.MailgunImpl
	from    string
	timeout time.Duration
}

func NewMailgun(domain, apiKey, sender string) (*Mailgun, error) {
	if domain == "" || apiKey == "" || sender == "" {
		return nil, errors.New("mailgun: domain, api key and sender are required")
	}
	return &Mailgun{client: mg.NewMailgun(domain, apiKey), from: sender, timeout: 10 * time.Second}, nil
}

func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	msg := m.client.NewMessage(m.from, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	_, _, err := m.client.Send(c, msg)
	return err
}

// Discard drops every message. Used when sending is switched off.
type Discard struct{}

func (Discard) Send(context.Context, string, string, string, string) error { return nil }

var (
	_ Sender = (*Mailgun)(nil)
	_ Sender = Discard{}
)
