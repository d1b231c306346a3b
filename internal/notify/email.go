package notify

import (
	"context"
	"errors"
	"fmt"

	brevo "github.com/getbrevo/brevo-go/lib"
)

// Email sends transactional alert mail through the Brevo API.
type Email struct {
	From    string
	To      string
	Subject string

	client *brevo.APIClient
}

// NewEmail returns nil when no API key is configured, which disables the
// transport without special-casing at the call site (Multi skips nils).
func NewEmail(apiKey, from, to, subject string) *Email {
	if apiKey == "" || to == "" {
		return nil
	}
	cfg := brevo.NewConfiguration()
	cfg.AddDefaultHeader("api-key", apiKey)
	return &Email{
		From:    from,
		To:      to,
		Subject: subject,
		client:  brevo.NewAPIClient(cfg),
	}
}

func (e *Email) Send(ctx context.Context, title, text string) error {
	if e == nil || e.client == nil {
		return errors.New("email disabled")
	}
	subject := e.Subject
	if subject == "" {
		subject = title
	}
	msg := brevo.SendSmtpEmail{
		Sender: &brevo.SendSmtpEmailSender{
			Name:  "netstatus",
			Email: e.From,
		},
		To:          []brevo.SendSmtpEmailTo{{Email: e.To}},
		Subject:     subject,
		TextContent: title + "\n\n" + text,
		HtmlContent: fmt.Sprintf("<pre>%s\n\n%s</pre>", title, text),
	}
	_, _, err := e.client.TransactionalEmailsApi.SendTransacEmail(ctx, msg)
	if err != nil {
		return fmt.Errorf("brevo send: %w", err)
	}
	return nil
}
