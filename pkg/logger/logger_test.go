package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/horoscope/pkg/logger"
)

type ctxKey struct{}

func runIDExtractor(ctx context.Context) (slog.Attr, bool) {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return slog.String("run_id", id), true
	}
	return slog.Attr{}, false
}

func TestNewWithWriter_ContextExtraction(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, logger.Config{Level: slog.LevelInfo}, runIDExtractor, nil)

	ctx := context.WithValue(context.Background(), ctxKey{}, "run-1")
	log.With(slog.String("component", "pipeline")).InfoContext(ctx, "delivered")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "delivered", rec["msg"])
	require.Equal(t, "run-1", rec["run_id"])
	require.Equal(t, "pipeline", rec["component"])
}

func TestNewWithWriter_NoValueInContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, logger.Config{}, runIDExtractor)
	log.InfoContext(context.Background(), "hello")

	require.NotContains(t, buf.String(), "run_id")
}

func TestNewWithWriter_LevelAndFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, logger.Config{Level: slog.LevelWarn, Format: "text"})

	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.True(t, strings.Contains(out, "level=WARN msg=shown"), out)
}

func TestConfig_LevelParsing(t *testing.T) {
	t.Parallel()

	var level slog.Level
	require.NoError(t, level.UnmarshalText([]byte("debug")))
	require.Equal(t, slog.LevelDebug, level)
}

func TestNewWithSentry_WithoutDSN(t *testing.T) {
	t.Parallel()

	log, flush := logger.NewWithSentry(logger.Config{}, logger.SentryConfig{})
	require.NotNil(t, log)
	require.NotPanics(t, func() { flush(time.Millisecond) })
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	require.NotPanics(t, func() { log.Error("discarded", slog.Any("error", errors.New("x"))) })
}
