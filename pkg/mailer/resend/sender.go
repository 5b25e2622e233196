// Package resend delivers mail through the Resend HTTP API.
package resend

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/horoscope/pkg/mailer"
)

// ErrMissingFrom is returned when an email reaches the sender without a From address.
var ErrMissingFrom = errors.New("resend: sender address is required")

// emailsAPI is the subset of the Resend emails service used here.
type emailsAPI interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	emails emailsAPI
}

// New creates a new Resend sender.
func New(cfg Config) *Sender {
	return &Sender{emails: resend.NewClient(cfg.APIKey).Emails}
}

// Send implements mailer.Sender and returns the Resend message ID.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (string, error) {
	if email.From == "" {
		return "", ErrMissingFrom
	}

	resp, err := s.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
		Headers: email.Headers,
	})
	if err != nil {
		return "", fmt.Errorf("resend: failed to send email: %w", err)
	}

	return resp.Id, nil
}
