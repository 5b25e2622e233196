package mailer

import (
	"context"
	"errors"
)

// Mailer validates emails and hands them to a Sender.
type Mailer struct {
	sender Sender
	config Config
}

// New creates a new Mailer with the given sender.
func New(sender Sender, cfg Config) *Mailer {
	return &Mailer{
		sender: sender,
		config: cfg,
	}
}

// Send delivers a pre-built email and returns the transport acknowledgement.
// The default sender is used when email.From is empty.
// Every failure, validation included, matches ErrSendFailed.
func (m *Mailer) Send(ctx context.Context, email *Email) (string, error) {
	if err := validate(email); err != nil {
		return "", errors.Join(ErrSendFailed, err)
	}

	msg := *email
	if msg.From == "" && m.config.From != "" {
		msg.From = m.config.DefaultFrom()
	}

	receipt, err := m.sender.Send(ctx, &msg)
	if err != nil {
		return "", errors.Join(ErrSendFailed, err)
	}

	return receipt, nil
}

func validate(email *Email) error {
	switch {
	case email == nil || len(email.To) == 0:
		return ErrNoRecipient
	case email.Subject == "":
		return ErrNoSubject
	case email.HTML == "":
		return ErrNoContent
	}
	return nil
}
