package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/horoscope/internal/compose"
	"github.com/dmitrymomot/horoscope/internal/pipeline"
	"github.com/dmitrymomot/horoscope/pkg/horoscope"
	"github.com/dmitrymomot/horoscope/pkg/mailer"
)

type fixture struct {
	fetcher    *mockFetcher
	translator *mockTranslator
	composer   *mockComposer
	dispatcher *mockDispatcher
	pipeline   *pipeline.Pipeline
}

func newFixture() *fixture {
	f := &fixture{
		fetcher:    &mockFetcher{},
		translator: &mockTranslator{},
		composer:   &mockComposer{},
		dispatcher: &mockDispatcher{},
	}
	f.pipeline = pipeline.New(f.fetcher, f.translator, f.composer, f.dispatcher, pipeline.Config{SourceLanguage: "en"})
	return f
}

func reading(text string) *horoscope.Reading {
	return &horoscope.Reading{Sign: horoscope.Leo, Date: "2026-10-16", Text: text, LuckyNumber: "7"}
}

func TestPipeline_Deliver_Translated(t *testing.T) {
	t.Parallel()

	f := newFixture()
	r := pipeline.Recipient{Email: "x.y@z.ro", Sign: horoscope.Leo, Language: "ro"}

	f.fetcher.On("Fetch", mock.Anything, horoscope.Leo).Return(reading("A great day awaits"), nil)
	f.translator.On("Translate", mock.Anything, "A great day awaits", "ro").Return("O zi mare te asteapta", nil)
	f.composer.On("Compose", mock.Anything, compose.Input{
		To: "x.y@z.ro", Sign: horoscope.Leo, Locale: "ro",
		Text: "O zi mare te asteapta", LuckyNumber: "7", Date: "2026-10-16",
	}).Return(&compose.Message{To: "x.y@z.ro", Subject: "s", HTML: "<p>h</p>", Text: "h"}, nil)
	f.dispatcher.On("Send", mock.Anything, mock.MatchedBy(func(e *mailer.Email) bool {
		return e.To[0] == "x.y@z.ro" && e.Subject == "s" && e.HTML == "<p>h</p>" && e.Text == "h"
	})).Return("msg-1", nil)

	out := f.pipeline.Deliver(context.Background(), r)

	require.True(t, out.OK())
	require.Equal(t, "msg-1", out.Receipt)
	require.Equal(t, "x.y@z.ro", out.Recipient)
	require.Empty(t, out.Stage)
	mock.AssertExpectationsForObjects(t, f.fetcher, f.translator, f.composer, f.dispatcher)
}

func TestPipeline_Deliver_SourceLanguageSkipsTranslation(t *testing.T) {
	t.Parallel()

	for _, lang := range []string{"en", "en-US", ""} {
		t.Run("lang="+lang, func(t *testing.T) {
			t.Parallel()

			f := newFixture()
			f.fetcher.On("Fetch", mock.Anything, horoscope.Leo).Return(reading("Shine"), nil)
			f.composer.On("Compose", mock.Anything, mock.MatchedBy(func(in compose.Input) bool {
				return in.Text == "Shine"
			})).Return(&compose.Message{To: "a@b.com", Subject: "s", HTML: "h"}, nil)
			f.dispatcher.On("Send", mock.Anything, mock.Anything).Return("ok", nil)

			out := f.pipeline.Deliver(context.Background(), pipeline.Recipient{Email: "a@b.com", Sign: horoscope.Leo, Language: lang})

			require.True(t, out.OK())
			f.translator.AssertNotCalled(t, "Translate", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestPipeline_Deliver_FetchFailureSendsNothing(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.fetcher.On("Fetch", mock.Anything, horoscope.Leo).Return(nil, horoscope.ErrFetchFailed)

	out := f.pipeline.Deliver(context.Background(), pipeline.Recipient{Email: "a@b.ro", Sign: horoscope.Leo, Language: "ro"})

	require.False(t, out.OK())
	require.Equal(t, pipeline.StageFetch, out.Stage)
	require.ErrorIs(t, out.Err, horoscope.ErrFetchFailed)

	var stageErr *pipeline.StageError
	require.ErrorAs(t, out.Err, &stageErr)
	require.Equal(t, "a@b.ro", stageErr.Recipient)

	f.translator.AssertNotCalled(t, "Translate", mock.Anything, mock.Anything, mock.Anything)
	f.composer.AssertNotCalled(t, "Compose", mock.Anything, mock.Anything)
	f.dispatcher.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestPipeline_Deliver_StageFailures(t *testing.T) {
	t.Parallel()

	translateErr := errors.New("translate down")
	composeErr := errors.New("template broken")
	sendErr := errors.New("smtp down")

	tests := []struct {
		name  string
		setup func(f *fixture)
		stage pipeline.Stage
		err   error
	}{
		{
			name: "translate",
			setup: func(f *fixture) {
				f.translator.On("Translate", mock.Anything, mock.Anything, mock.Anything).Return("", translateErr)
			},
			stage: pipeline.StageTranslate,
			err:   translateErr,
		},
		{
			name: "compose",
			setup: func(f *fixture) {
				f.translator.On("Translate", mock.Anything, mock.Anything, mock.Anything).Return("t", nil)
				f.composer.On("Compose", mock.Anything, mock.Anything).Return(nil, composeErr)
			},
			stage: pipeline.StageCompose,
			err:   composeErr,
		},
		{
			name: "dispatch",
			setup: func(f *fixture) {
				f.translator.On("Translate", mock.Anything, mock.Anything, mock.Anything).Return("t", nil)
				f.composer.On("Compose", mock.Anything, mock.Anything).Return(&compose.Message{To: "a@b.ro", Subject: "s", HTML: "h"}, nil)
				f.dispatcher.On("Send", mock.Anything, mock.Anything).Return("", sendErr)
			},
			stage: pipeline.StageDispatch,
			err:   sendErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture()
			f.fetcher.On("Fetch", mock.Anything, horoscope.Leo).Return(reading("text"), nil)
			tt.setup(f)

			out := f.pipeline.Deliver(context.Background(), pipeline.Recipient{Email: "a@b.ro", Sign: horoscope.Leo, Language: "ro"})

			require.False(t, out.OK())
			require.Equal(t, tt.stage, out.Stage)
			require.ErrorIs(t, out.Err, tt.err)
			require.NotEmpty(t, out.Error)
			if tt.stage != pipeline.StageDispatch {
				f.dispatcher.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestPipeline_Deliver_RecoversPanic(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.fetcher.On("Fetch", mock.Anything, horoscope.Leo).Return(reading("text"), nil)
	f.composer.On("Compose", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		panic("nil map")
	})

	out := f.pipeline.Deliver(context.Background(), pipeline.Recipient{Email: "a@b.com", Sign: horoscope.Leo, Language: "en"})

	require.False(t, out.OK())
	require.Equal(t, pipeline.StageCompose, out.Stage)
	require.ErrorIs(t, out.Err, pipeline.ErrPanic)
	f.dispatcher.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestPipeline_Deliver_RunIDHeader(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.fetcher.On("Fetch", mock.Anything, horoscope.Leo).Return(reading("text"), nil)
	f.composer.On("Compose", mock.Anything, mock.Anything).Return(&compose.Message{To: "a@b.com", Subject: "s", HTML: "h"}, nil)
	f.dispatcher.On("Send", mock.Anything, mock.MatchedBy(func(e *mailer.Email) bool {
		return e.Headers["X-Horoscope-Run"] == "run-42"
	})).Return("ok", nil)

	ctx := pipeline.WithRunID(context.Background(), "run-42")
	out := f.pipeline.Deliver(ctx, pipeline.Recipient{Email: "a@b.com", Sign: horoscope.Leo, Language: "en"})

	require.True(t, out.OK())
	f.dispatcher.AssertExpectations(t)
}
