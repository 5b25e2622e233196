package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/horoscope/pkg/logger"
)

// Deliverer runs one delivery. *Pipeline implements it.
type Deliverer interface {
	Deliver(ctx context.Context, r Recipient) Outcome
}

// Coordinator fans deliveries out over a recipient list and waits for all
// of them.
type Coordinator struct {
	deliverer Deliverer
	logger    *slog.Logger
	limit     int
	now       func() time.Time
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithConcurrency caps simultaneous deliveries. Zero or less means no cap.
func WithConcurrency(n int) CoordinatorOption {
	return func(c *Coordinator) {
		c.limit = n
	}
}

// WithCoordinatorLogger sets the coordinator logger.
func WithCoordinatorLogger(l *slog.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(d Deliverer, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		deliverer: d,
		logger:    logger.NewNope(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run delivers to every recipient concurrently and returns once all
// deliveries have finished. Outcomes keep the order of recipients.
func (c *Coordinator) Run(ctx context.Context, recipients []Recipient) *Report {
	report := &Report{
		ID:        uuid.NewString(),
		StartedAt: c.now(),
		Outcomes:  make([]Outcome, len(recipients)),
	}
	ctx = WithRunID(ctx, report.ID)

	c.logger.InfoContext(ctx, "run started", slog.Int("recipients", len(recipients)))

	var g errgroup.Group
	if c.limit > 0 {
		g.SetLimit(c.limit)
	}
	for i, r := range recipients {
		g.Go(func() error {
			report.Outcomes[i] = c.deliverer.Deliver(ctx, r)
			return nil
		})
	}
	_ = g.Wait()

	report.FinishedAt = c.now()

	c.logger.InfoContext(ctx, "run finished",
		slog.Int("succeeded", report.Succeeded()),
		slog.Int("failed", report.Failed()),
		slog.Duration("duration", report.FinishedAt.Sub(report.StartedAt)),
	)

	return report
}
