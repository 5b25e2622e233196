package mailer

import "context"

// Sender defines the interface that email transports implement.
type Sender interface {
	// Send delivers a fully prepared email and returns the transport's
	// acknowledgement (message ID or server response).
	Send(ctx context.Context, email *Email) (string, error)
}
