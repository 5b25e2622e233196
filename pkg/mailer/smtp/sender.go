// Package smtp delivers mail over SMTP submission with STARTTLS and
// username/password authentication. A new connection is opened per message.
package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/horoscope/pkg/mailer"
)

var (
	// ErrMissingHost is returned when no SMTP host is configured.
	ErrMissingHost = errors.New("smtp: host is required")

	// ErrInvalidAddress is returned when the sender or a recipient cannot be parsed.
	ErrInvalidAddress = errors.New("smtp: invalid address")

	// ErrAuthUnsupported is returned when credentials are configured but the
	// server does not offer AUTH. The message is not sent unauthenticated.
	ErrAuthUnsupported = errors.New("smtp: server does not support AUTH")
)

// Sender implements mailer.Sender over SMTP.
type Sender struct {
	config Config
	dialer *net.Dialer
	now    func() time.Time
}

// New creates an SMTP sender.
func New(cfg Config) (*Sender, error) {
	if cfg.Host == "" {
		return nil, ErrMissingHost
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = 30 * time.Second
	}

	return &Sender{
		config: cfg,
		dialer: &net.Dialer{Timeout: cfg.DialTimeout},
		now:    time.Now,
	}, nil
}

// Send implements mailer.Sender. It returns the generated Message-ID.
// An empty From falls back to the authenticated username.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (string, error) {
	msg := *email
	if msg.From == "" {
		msg.From = s.config.Username
	}

	from, err := mail.ParseAddress(msg.From)
	if err != nil {
		return "", errors.Join(ErrInvalidAddress, err)
	}

	rcpts := make([]string, 0, len(msg.To))
	for _, to := range msg.To {
		addr, err := mail.ParseAddress(to)
		if err != nil {
			return "", errors.Join(ErrInvalidAddress, err)
		}
		rcpts = append(rcpts, addr.Address)
	}

	messageID := uuid.NewString() + "@" + s.config.Host
	data, err := buildMessage(&msg, messageID, s.now())
	if err != nil {
		return "", fmt.Errorf("smtp: build message: %w", err)
	}

	if err := s.deliver(ctx, from.Address, rcpts, data); err != nil {
		return "", err
	}

	return messageID, nil
}

func (s *Sender) deliver(ctx context.Context, from string, to []string, data []byte) error {
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))

	conn, err := s.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp: connect to %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp: client: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.config.Host}); err != nil {
			return fmt.Errorf("smtp: STARTTLS: %w", err)
		}
	}

	if s.config.Username != "" {
		if ok, _ := c.Extension("AUTH"); !ok {
			return ErrAuthUnsupported
		}
		auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
		if err := c.Auth(auth); err != nil {
			return fmt.Errorf("smtp: AUTH: %w", err)
		}
	}

	if err := c.Mail(from); err != nil {
		return fmt.Errorf("smtp: MAIL FROM: %w", err)
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp: RCPT TO %s: %w", rcpt, err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp: DATA: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("smtp: write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp: DATA close: %w", err)
	}

	return c.Quit()
}
