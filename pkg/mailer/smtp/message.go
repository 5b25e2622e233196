package smtp

import (
	"bytes"
	"fmt"
	"maps"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"slices"
	"strings"
	"time"

	"github.com/dmitrymomot/horoscope/pkg/mailer"
)

// buildMessage renders an RFC 5322 message with a multipart/alternative body.
func buildMessage(email *mailer.Email, messageID string, now time.Time) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if email.Text != "" {
		if err := writePart(mw, "text/plain; charset=UTF-8", email.Text); err != nil {
			return nil, err
		}
	}
	if err := writePart(mw, "text/html; charset=UTF-8", email.HTML); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var msg bytes.Buffer
	header := func(key, value string) {
		fmt.Fprintf(&msg, "%s: %s\r\n", key, value)
	}

	header("From", email.From)
	header("To", strings.Join(email.To, ", "))
	if email.ReplyTo != "" {
		header("Reply-To", email.ReplyTo)
	}
	header("Subject", mime.QEncoding.Encode("utf-8", email.Subject))
	header("Date", now.Format(time.RFC1123Z))
	header("Message-ID", "<"+messageID+">")
	for _, key := range slices.Sorted(maps.Keys(email.Headers)) {
		header(textproto.CanonicalMIMEHeaderKey(key), email.Headers[key])
	}
	header("MIME-Version", "1.0")
	header("Content-Type", fmt.Sprintf("multipart/alternative; boundary=%q", mw.Boundary()))
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())

	return msg.Bytes(), nil
}

func writePart(mw *multipart.Writer, contentType, content string) error {
	part, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {contentType},
		"Content-Transfer-Encoding": {"quoted-printable"},
	})
	if err != nil {
		return err
	}

	qp := quotedprintable.NewWriter(part)
	if _, err := qp.Write([]byte(content)); err != nil {
		return err
	}
	return qp.Close()
}
