package pipeline_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/horoscope/internal/compose"
	"github.com/dmitrymomot/horoscope/pkg/horoscope"
	"github.com/dmitrymomot/horoscope/pkg/mailer"
)

type mockFetcher struct{ mock.Mock }

func (m *mockFetcher) Fetch(ctx context.Context, sign horoscope.Sign) (*horoscope.Reading, error) {
	args := m.Called(ctx, sign)
	reading, _ := args.Get(0).(*horoscope.Reading)
	return reading, args.Error(1)
}

type mockTranslator struct{ mock.Mock }

func (m *mockTranslator) Translate(ctx context.Context, text, target string) (string, error) {
	args := m.Called(ctx, text, target)
	return args.String(0), args.Error(1)
}

type mockComposer struct{ mock.Mock }

func (m *mockComposer) Compose(ctx context.Context, in compose.Input) (*compose.Message, error) {
	args := m.Called(ctx, in)
	msg, _ := args.Get(0).(*compose.Message)
	return msg, args.Error(1)
}

type mockDispatcher struct{ mock.Mock }

func (m *mockDispatcher) Send(ctx context.Context, email *mailer.Email) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}
