// Package mailer renders and delivers HTML emails through pluggable providers.
//
// The package separates delivery (a [Sender] per provider) from rendering
// (a [Renderer] over markdown templates with YAML frontmatter), so the
// horoscope composer and the transports evolve independently.
//
// # Architecture
//
//   - Sender: interface that transports implement (smtp, resend, ses, console)
//   - Renderer: converts markdown templates with frontmatter into subject, HTML and text
//   - Mailer: validates messages, applies the default sender and wraps delivery errors
//
// # Templates
//
// Templates are markdown files with optional YAML frontmatter:
//
//	---
//	Subject: Today's Horoscope for {{.SignLabel}}
//	---
//
//	Hello {{.Name}},
//
//	<blockquote>
//	<p>{{.Text}}</p>
//	</blockquote>
//
// The Subject field is itself a text/template. Raw HTML blocks are passed
// through untouched, so callers must sanitize untrusted values before
// handing them to the renderer.
//
// # Sending
//
//	m := mailer.New(smtp.New(cfg), mailer.Config{From: "me@gmail.com"})
//	receipt, err := m.Send(ctx, &mailer.Email{
//		To:      []string{"user@example.com"},
//		Subject: "Hello",
//		HTML:    "<p>Hi!</p>",
//	})
//
// # Errors
//
//   - ErrSendFailed: Mailer.Send failed, joined with the cause below or the transport error
//   - ErrNoRecipient, ErrNoSubject, ErrNoContent: message validation
//   - ErrTemplateNotFound, ErrLayoutNotFound, ErrRenderFailed, ErrInvalidFrontmatter: rendering
package mailer
