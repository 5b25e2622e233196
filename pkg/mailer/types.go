package mailer

import (
	"fmt"
	"strings"
)

// Recipient formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Email represents a fully prepared email message ready for sending.
type Email struct {
	Headers map[string]string // Custom headers
	From    string            // Sender; the Mailer fills in its default when empty
	ReplyTo string            // Reply-to address
	Subject string            // Email subject
	HTML    string            // HTML body content
	Text    string            // Plain text alternative
	To      []string          // Recipients (at least one required)
}

// Summary returns a short description of the email for logs.
func (e *Email) Summary() string {
	return fmt.Sprintf("to=%s subject=%q", strings.Join(e.To, ","), e.Subject)
}
