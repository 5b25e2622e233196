// Package console is a dry-run mail transport that logs messages instead of
// delivering them.
package console

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/horoscope/pkg/mailer"
)

// Sender logs every email through slog and never fails.
type Sender struct {
	logger *slog.Logger
}

// New creates a console sender. A nil logger uses slog.Default().
func New(logger *slog.Logger) *Sender {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sender{logger: logger}
}

// Send implements mailer.Sender. The returned ID is prefixed with "dry-run-".
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (string, error) {
	id := "dry-run-" + uuid.NewString()

	s.logger.InfoContext(ctx, "email not sent (dry run)",
		slog.String("message_id", id),
		slog.String("from", email.From),
		slog.String("email", email.Summary()),
	)
	s.logger.DebugContext(ctx, "dry run text body", slog.String("message_id", id), slog.String("text", email.Text))

	return id, nil
}
