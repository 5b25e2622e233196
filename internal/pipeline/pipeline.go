package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/horoscope/internal/compose"
	"github.com/dmitrymomot/horoscope/pkg/horoscope"
	"github.com/dmitrymomot/horoscope/pkg/logger"
	"github.com/dmitrymomot/horoscope/pkg/mailer"
	"github.com/dmitrymomot/horoscope/pkg/translate"
)

// Fetcher retrieves the daily reading for a sign.
type Fetcher interface {
	Fetch(ctx context.Context, sign horoscope.Sign) (*horoscope.Reading, error)
}

// Translator translates text into the target language.
type Translator interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

// Composer builds the email for a reading.
type Composer interface {
	Compose(ctx context.Context, in compose.Input) (*compose.Message, error)
}

// Dispatcher delivers a composed email and returns the transport's acknowledgement.
type Dispatcher interface {
	Send(ctx context.Context, email *mailer.Email) (string, error)
}

// Config holds the pipeline settings shared by every delivery.
type Config struct {
	// SourceLanguage is the language the provider writes in. Recipients
	// reading it skip translation.
	SourceLanguage string
}

// Pipeline runs one delivery per call. It holds no per-delivery state and
// is safe for concurrent use.
type Pipeline struct {
	fetcher    Fetcher
	translator Translator
	composer   Composer
	dispatcher Dispatcher
	config     Config
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the pipeline logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a Pipeline.
func New(f Fetcher, t Translator, c Composer, d Dispatcher, cfg Config, opts ...Option) *Pipeline {
	if cfg.SourceLanguage == "" {
		cfg.SourceLanguage = translate.DefaultSourceLanguage
	}

	p := &Pipeline{
		fetcher:    f,
		translator: t,
		composer:   c,
		dispatcher: d,
		config:     cfg,
		logger:     logger.NewNope(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Deliver runs every stage for r. It never returns an error: failures,
// panics included, are logged and recorded in the Outcome.
func (p *Pipeline) Deliver(ctx context.Context, r Recipient) (out Outcome) {
	ctx = withRecipient(ctx, r.Email)
	start := p.now()
	stage := StageFetch

	out = Outcome{Recipient: r.Email, Sign: r.Sign, Language: r.Language}

	defer func() {
		if rec := recover(); rec != nil {
			out.fail(&StageError{Stage: stage, Recipient: r.Email, Err: fmt.Errorf("%w: %v", ErrPanic, rec)})
		}
		out.Duration = p.now().Sub(start)

		if out.Err != nil {
			p.logger.ErrorContext(ctx, "delivery failed",
				slog.String("stage", string(out.Stage)),
				slog.String("error", out.Err.Error()),
			)
			return
		}
		p.logger.InfoContext(ctx, "delivery succeeded",
			slog.String("receipt", out.Receipt),
			slog.Duration("duration", out.Duration),
		)
	}()

	reading, err := p.fetcher.Fetch(ctx, r.Sign)
	if err != nil {
		out.fail(&StageError{Stage: stage, Recipient: r.Email, Err: err})
		return out
	}

	text := reading.Text
	if p.needsTranslation(r.Language) {
		stage = StageTranslate
		text, err = p.translator.Translate(ctx, reading.Text, r.Language)
		if err != nil {
			out.fail(&StageError{Stage: stage, Recipient: r.Email, Err: err})
			return out
		}
	}

	stage = StageCompose
	msg, err := p.composer.Compose(ctx, compose.Input{
		To:          r.Email,
		Sign:        r.Sign,
		Locale:      r.Language,
		Text:        text,
		LuckyNumber: reading.LuckyNumber.String(),
		Date:        reading.Date,
	})
	if err != nil {
		out.fail(&StageError{Stage: stage, Recipient: r.Email, Err: err})
		return out
	}

	stage = StageDispatch
	email := &mailer.Email{
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	}
	if runID, ok := RunIDFromContext(ctx); ok {
		email.Headers = map[string]string{"X-Horoscope-Run": runID}
	}

	receipt, err := p.dispatcher.Send(ctx, email)
	if err != nil {
		out.fail(&StageError{Stage: stage, Recipient: r.Email, Err: err})
		return out
	}

	out.Receipt = receipt
	return out
}

// needsTranslation reports whether lang differs from the source language.
// An empty or unparsable lang is left to the translator, which rejects it.
func (p *Pipeline) needsTranslation(lang string) bool {
	if lang == "" {
		return false
	}
	same, err := translate.SameLanguage(lang, p.config.SourceLanguage)
	return err != nil || !same
}
