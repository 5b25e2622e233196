package logger

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig configures Sentry reporting. An empty DSN disables it.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
}

// NewWithSentry creates a logger that writes to stdout and, when a DSN is
// set, to Sentry. The returned flush func waits for buffered Sentry events
// and is safe to call when Sentry is disabled.
func NewWithSentry(cfg Config, sentryCfg SentryConfig, extractors ...ContextExtractor) (*slog.Logger, func(time.Duration)) {
	stdout := newHandler(os.Stdout, cfg)
	noFlush := func(time.Duration) {}

	if sentryCfg.DSN == "" {
		return slog.New(NewContextHandler(stdout, extractors...)), noFlush
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         sentryCfg.DSN,
		Environment: sentryCfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdout).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(NewContextHandler(stdout, extractors...)), noFlush
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	handler := fanoutHandler{stdout, sentryHandler}
	flush := func(timeout time.Duration) { sentry.Flush(timeout) }

	return slog.New(NewContextHandler(handler, extractors...)), flush
}
