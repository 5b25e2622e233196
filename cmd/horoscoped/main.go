// Command horoscoped emails each recipient the daily horoscope for their
// sign. Without RUN_SCHEDULE (or with -once) it performs a single run and
// exits; otherwise it runs on the schedule and serves a small HTTP API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrymomot/horoscope/internal/compose"
	"github.com/dmitrymomot/horoscope/internal/config"
	"github.com/dmitrymomot/horoscope/internal/pipeline"
	"github.com/dmitrymomot/horoscope/internal/schedule"
	"github.com/dmitrymomot/horoscope/internal/server"
	"github.com/dmitrymomot/horoscope/pkg/health"
	"github.com/dmitrymomot/horoscope/pkg/horoscope"
	"github.com/dmitrymomot/horoscope/pkg/logger"
	"github.com/dmitrymomot/horoscope/pkg/mailer"
	"github.com/dmitrymomot/horoscope/pkg/mailer/console"
	"github.com/dmitrymomot/horoscope/pkg/mailer/resend"
	"github.com/dmitrymomot/horoscope/pkg/mailer/ses"
	"github.com/dmitrymomot/horoscope/pkg/mailer/smtp"
	"github.com/dmitrymomot/horoscope/pkg/translate"
)

const sentryFlushTimeout = 2 * time.Second

var errDeliveryFailed = errors.New("one or more deliveries failed")

func main() {
	once := flag.Bool("once", false, "perform a single run and exit, even when RUN_SCHEDULE is set")
	recipients := flag.String("recipients", "", "path to the recipients file (overrides RECIPIENTS_FILE)")
	dryRun := flag.Bool("dry-run", false, "log emails instead of sending them")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *recipients != "" {
		cfg.RecipientsFile = *recipients
	}
	if *dryRun {
		cfg.Transport = config.TransportConsole
	}

	extractors := append(pipeline.LogExtractors(), server.RequestIDExtractor())
	log, flush := logger.NewWithSentry(cfg.Log, cfg.Sentry, extractors...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, *once, log)
	stop()
	flush(sentryFlushTimeout)

	if err != nil {
		if !errors.Is(err, errDeliveryFailed) {
			log.Error("horoscoped failed", slog.String("error", err.Error()))
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, once bool, log *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	coordinator, err := buildCoordinator(ctx, cfg, log)
	if err != nil {
		return err
	}

	runOnce := func(ctx context.Context) (*pipeline.Report, error) {
		recipients, err := config.LoadRecipients(cfg.RecipientsFile, cfg.TargetLanguage)
		if err != nil {
			return nil, err
		}
		return coordinator.Run(ctx, recipients), nil
	}

	if once || cfg.Run.Schedule == "" {
		report, err := runOnce(ctx)
		if err != nil {
			return err
		}
		if report.Failed() > 0 {
			return errDeliveryFailed
		}
		return nil
	}

	return serve(ctx, cfg, runOnce, log)
}

func serve(ctx context.Context, cfg config.Config, runOnce schedule.RunFunc, log *slog.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	sched, err := schedule.New(cfg.Run.Schedule, runOnce,
		schedule.WithLocation(loc),
		schedule.WithLogger(log),
	)
	if err != nil {
		return err
	}
	if err := sched.Start(ctx); err != nil {
		return err
	}

	checks := health.Checks{
		"scheduler":  sched.Healthcheck(),
		"recipients": health.FileReadable(cfg.RecipientsFile),
	}

	return server.Run(ctx, server.Config{
		Handler:         server.NewRouter(sched, checks, log),
		Logger:          log,
		Addr:            cfg.HTTP.Addr,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
		ShutdownHooks:   []func(context.Context) error{sched.Stop},
	})
}

func buildCoordinator(ctx context.Context, cfg config.Config, log *slog.Logger) (*pipeline.Coordinator, error) {
	httpClient := &http.Client{Timeout: cfg.HTTP.Timeout}

	fetcher := horoscope.New(cfg.Horoscope, horoscope.WithHTTPClient(httpClient))
	translator := translate.New(cfg.Translate, translate.WithHTTPClient(httpClient))

	composer, err := compose.New(cfg.Compose, compose.WithLogger(log))
	if err != nil {
		return nil, err
	}

	sender, err := newSender(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	p := pipeline.New(fetcher, translator, composer, mailer.New(sender, cfg.Mail),
		pipeline.Config{SourceLanguage: translator.SourceLanguage()},
		pipeline.WithLogger(log),
	)

	return pipeline.NewCoordinator(p,
		pipeline.WithConcurrency(cfg.Run.Concurrency),
		pipeline.WithCoordinatorLogger(log),
	), nil
}

func newSender(ctx context.Context, cfg config.Config, log *slog.Logger) (mailer.Sender, error) {
	switch cfg.Transport {
	case config.TransportResend:
		return resend.New(cfg.Resend), nil
	case config.TransportSES:
		s, err := ses.New(ctx, cfg.SES)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.TransportConsole:
		return console.New(log), nil
	default:
		s, err := smtp.New(cfg.SMTP)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}
