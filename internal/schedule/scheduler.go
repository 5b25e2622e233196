// Package schedule runs the delivery coordinator on a cron schedule and
// keeps the most recent report.
package schedule

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/horoscope/internal/pipeline"
	"github.com/dmitrymomot/horoscope/pkg/logger"
)

// RunFunc performs one run. An error means the run could not start at all,
// for example because the recipient list failed to load.
type RunFunc func(ctx context.Context) (*pipeline.Report, error)

// Scheduler triggers runs from cron or on demand. At most one run is
// active at a time; overlapping requests are skipped.
type Scheduler struct {
	cron     *cron.Cron
	schedule cron.Schedule
	location *time.Location
	run      RunFunc
	logger   *slog.Logger
	last     atomic.Pointer[pipeline.Report]
	running  atomic.Bool
	runs     sync.WaitGroup

	mu      sync.Mutex
	ctx     context.Context
	started bool
}

// Option configures a Scheduler.
type Option func(*options)

type options struct {
	location *time.Location
	logger   *slog.Logger
}

// WithLocation sets the time zone the cron expression is evaluated in.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithLogger sets the scheduler logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates a scheduler that calls run on spec.
func New(spec string, run RunFunc, opts ...Option) (*Scheduler, error) {
	o := options{location: time.UTC, logger: logger.NewNope()}
	for _, opt := range opts {
		opt(&o)
	}

	sched, err := ParseSpec(spec)
	if err != nil {
		return nil, err
	}

	cl := cronLogger{logger: o.logger}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(o.location),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl)),
		),
		schedule: sched,
		location: o.location,
		run:      run,
		logger:   o.logger,
	}
	s.cron.Schedule(sched, cron.FuncJob(func() {
		if err := s.trigger("schedule"); err != nil {
			s.logger.Warn("scheduled run skipped", slog.String("reason", err.Error()))
		}
	}))

	return s, nil
}

// Start begins firing scheduled runs. Runs use ctx, so cancelling it
// cancels in-flight deliveries.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}

	s.ctx = ctx
	s.started = true
	s.cron.Start()

	s.logger.Info("scheduler started", slog.Time("next_run", s.Next()))
	return nil
}

// Stop stops scheduling and waits for an active run to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return ErrNotStarted
	}
	s.started = false
	s.mu.Unlock()

	cronDone := s.cron.Stop()
	runsDone := make(chan struct{})
	go func() {
		<-cronDone.Done()
		s.runs.Wait()
		close(runsDone)
	}()

	select {
	case <-runsDone:
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Trigger starts a run in the background. It returns ErrRunInProgress when
// a run is already active and ErrNotStarted before Start.
func (s *Scheduler) Trigger() error {
	return s.trigger("manual")
}

// RunNow performs a run synchronously with ctx.
func (s *Scheduler) RunNow(ctx context.Context) (*pipeline.Report, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	s.runs.Add(1)
	return s.execute(ctx, "manual")
}

// Last returns the most recent completed report, or nil.
func (s *Scheduler) Last() *pipeline.Report {
	return s.last.Load()
}

// Running reports whether a run is active.
func (s *Scheduler) Running() bool {
	return s.running.Load()
}

// Next returns the next scheduled run time.
func (s *Scheduler) Next() time.Time {
	return s.schedule.Next(time.Now().In(s.location))
}

// Healthcheck reports whether the scheduler has been started.
func (s *Scheduler) Healthcheck() func(ctx context.Context) error {
	return func(context.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.started {
			return ErrNotStarted
		}
		return nil
	}
}

func (s *Scheduler) trigger(source string) error {
	s.mu.Lock()
	ctx, started := s.ctx, s.started
	s.mu.Unlock()

	if !started {
		return ErrNotStarted
	}
	if !s.running.CompareAndSwap(false, true) {
		return ErrRunInProgress
	}

	s.runs.Add(1)
	go func() { _, _ = s.execute(ctx, source) }()
	return nil
}

// execute expects running to be set and runs counted; it clears both.
func (s *Scheduler) execute(ctx context.Context, source string) (*pipeline.Report, error) {
	defer s.runs.Done()
	defer s.running.Store(false)

	s.logger.InfoContext(ctx, "run triggered", slog.String("source", source))

	report, err := s.run(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "run could not start", slog.String("error", err.Error()))
		return nil, err
	}

	s.last.Store(report)
	return report, nil
}
