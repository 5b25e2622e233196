package pipeline_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/horoscope/internal/pipeline"
	"github.com/dmitrymomot/horoscope/pkg/horoscope"
	"github.com/dmitrymomot/horoscope/pkg/logger"
)

// deliverFunc adapts a function to pipeline.Deliverer.
type deliverFunc func(ctx context.Context, r pipeline.Recipient) pipeline.Outcome

func (f deliverFunc) Deliver(ctx context.Context, r pipeline.Recipient) pipeline.Outcome {
	return f(ctx, r)
}

func recipients(emails ...string) []pipeline.Recipient {
	out := make([]pipeline.Recipient, len(emails))
	for i, e := range emails {
		out[i] = pipeline.Recipient{Email: e, Sign: horoscope.Leo, Language: "ro"}
	}
	return out
}

func TestCoordinator_Run_IsolatesFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	d := deliverFunc(func(_ context.Context, r pipeline.Recipient) pipeline.Outcome {
		calls.Add(1)
		out := pipeline.Outcome{Recipient: r.Email, Sign: r.Sign}
		if r.Email == "bad@example.ro" {
			out.Err = &pipeline.StageError{Stage: pipeline.StageDispatch, Recipient: r.Email, Err: errors.New("smtp down")}
			out.Stage = pipeline.StageDispatch
			return out
		}
		out.Receipt = "ok-" + r.Email
		return out
	})

	report := pipeline.NewCoordinator(d).Run(context.Background(),
		recipients("a@example.ro", "bad@example.ro", "c@example.ro"))

	require.Equal(t, int32(3), calls.Load())
	require.Len(t, report.Outcomes, 3)
	require.Equal(t, 2, report.Succeeded())
	require.Equal(t, 1, report.Failed())
	require.Error(t, report.Err())

	require.Equal(t, "a@example.ro", report.Outcomes[0].Recipient)
	require.True(t, report.Outcomes[0].OK())
	require.False(t, report.Outcomes[1].OK())
	require.Equal(t, "ok-c@example.ro", report.Outcomes[2].Receipt)

	require.NotEmpty(t, report.ID)
	require.False(t, report.FinishedAt.Before(report.StartedAt))
}

func TestCoordinator_Run_Concurrent(t *testing.T) {
	t.Parallel()

	const n = 5
	var wg sync.WaitGroup
	wg.Add(n)

	// Every delivery waits for all others to start, so this only finishes
	// when deliveries run at the same time.
	d := deliverFunc(func(_ context.Context, r pipeline.Recipient) pipeline.Outcome {
		wg.Done()
		wg.Wait()
		return pipeline.Outcome{Recipient: r.Email}
	})

	done := make(chan *pipeline.Report)
	go func() {
		done <- pipeline.NewCoordinator(d).Run(context.Background(),
			recipients("a@x.ro", "b@x.ro", "c@x.ro", "d@x.ro", "e@x.ro"))
	}()

	select {
	case report := <-done:
		require.Equal(t, n, report.Succeeded())
	case <-time.After(5 * time.Second):
		t.Fatal("deliveries did not run concurrently")
	}
}

func TestCoordinator_Run_ConcurrencyLimit(t *testing.T) {
	t.Parallel()

	var active, peak atomic.Int32
	d := deliverFunc(func(_ context.Context, r pipeline.Recipient) pipeline.Outcome {
		cur := active.Add(1)
		for {
			old := peak.Load()
			if cur <= old || peak.CompareAndSwap(old, cur) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		active.Add(-1)
		return pipeline.Outcome{Recipient: r.Email}
	})

	report := pipeline.NewCoordinator(d, pipeline.WithConcurrency(2)).Run(context.Background(),
		recipients("a@x.ro", "b@x.ro", "c@x.ro", "d@x.ro", "e@x.ro", "f@x.ro"))

	require.Equal(t, 6, report.Succeeded())
	require.LessOrEqual(t, peak.Load(), int32(2))
}

func TestCoordinator_Run_PropagatesRunID(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	seen := map[string]bool{}
	d := deliverFunc(func(ctx context.Context, r pipeline.Recipient) pipeline.Outcome {
		id, ok := pipeline.RunIDFromContext(ctx)
		assert.True(t, ok)
		mu.Lock()
		seen[id] = true
		mu.Unlock()
		return pipeline.Outcome{Recipient: r.Email}
	})

	report := pipeline.NewCoordinator(d).Run(context.Background(), recipients("a@x.ro", "b@x.ro"))

	require.Equal(t, map[string]bool{report.ID: true}, seen)
}

func TestCoordinator_Run_Empty(t *testing.T) {
	t.Parallel()

	report := pipeline.NewCoordinator(deliverFunc(func(context.Context, pipeline.Recipient) pipeline.Outcome {
		t.Error("unexpected delivery")
		return pipeline.Outcome{}
	})).Run(context.Background(), nil)

	require.Empty(t, report.Outcomes)
	require.NoError(t, report.Err())
}

func TestCoordinator_Run_LogsWithRunID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, logger.Config{}, pipeline.LogExtractors()...)

	d := deliverFunc(func(_ context.Context, r pipeline.Recipient) pipeline.Outcome {
		return pipeline.Outcome{Recipient: r.Email}
	})
	report := pipeline.NewCoordinator(d, pipeline.WithCoordinatorLogger(log)).Run(context.Background(), recipients("a@x.ro"))

	dec := json.NewDecoder(&buf)
	for dec.More() {
		var rec map[string]any
		require.NoError(t, dec.Decode(&rec))
		require.Equal(t, report.ID, rec["run_id"])
	}
}

func TestReport_JSON(t *testing.T) {
	t.Parallel()

	report := &pipeline.Report{
		ID: "run-1",
		Outcomes: []pipeline.Outcome{
			{Recipient: "a@x.ro", Sign: horoscope.Leo, Receipt: "id-1"},
			{Recipient: "b@x.ro", Sign: horoscope.Aries, Stage: pipeline.StageFetch, Error: "fetch b@x.ro: boom", Err: errors.New("boom")},
		},
	}

	data, err := json.Marshal(report)
	require.NoError(t, err)
	require.Contains(t, string(data), `"receipt":"id-1"`)
	require.Contains(t, string(data), `"failed_stage":"fetch"`)
	require.Contains(t, string(data), `"error":"fetch b@x.ro: boom"`)
}

var _ pipeline.Deliverer = (*pipeline.Pipeline)(nil)
