package resend

import (
	"context"
	"errors"
	"testing"

	"github.com/resend/resend-go/v3"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/horoscope/pkg/mailer"
)

type fakeEmails struct {
	req  *resend.SendEmailRequest
	resp *resend.SendEmailResponse
	err  error
}

func (f *fakeEmails) SendWithContext(_ context.Context, req *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.req = req
	return f.resp, f.err
}

func TestSender_Send(t *testing.T) {
	t.Parallel()

	fake := &fakeEmails{resp: &resend.SendEmailResponse{Id: "msg_123"}}
	s := &Sender{emails: fake}

	id, err := s.Send(context.Background(), &mailer.Email{
		From:    "Stars <stars@example.com>",
		To:      []string{"ana@example.ro"},
		Subject: "Horoscopul de azi pentru zodia leu",
		HTML:    "<p>Salut</p>",
		Text:    "Salut",
	})
	require.NoError(t, err)
	require.Equal(t, "msg_123", id)
	require.Equal(t, []string{"ana@example.ro"}, fake.req.To)
	require.Equal(t, "<p>Salut</p>", fake.req.Html)
	require.Equal(t, "Salut", fake.req.Text)
}

func TestSender_Send_Errors(t *testing.T) {
	t.Parallel()

	apiErr := errors.New("rate limited")
	s := &Sender{emails: &fakeEmails{err: apiErr}}

	_, err := s.Send(context.Background(), &mailer.Email{To: []string{"a@b.ro"}})
	require.ErrorIs(t, err, ErrMissingFrom)

	_, err = s.Send(context.Background(), &mailer.Email{From: "x@y.ro", To: []string{"a@b.ro"}})
	require.ErrorIs(t, err, apiErr)
}
