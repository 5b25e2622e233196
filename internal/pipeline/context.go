package pipeline

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/horoscope/pkg/logger"
)

type (
	runIDKey     struct{}
	recipientKey struct{}
)

// WithRunID stores the run ID in ctx.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunIDFromContext returns the run ID stored by WithRunID.
func RunIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey{}).(string)
	return id, ok && id != ""
}

func withRecipient(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, recipientKey{}, email)
}

// LogExtractors adds run_id and recipient attributes to records logged with
// a pipeline context.
func LogExtractors() []logger.ContextExtractor {
	return []logger.ContextExtractor{
		func(ctx context.Context) (slog.Attr, bool) {
			id, ok := RunIDFromContext(ctx)
			return slog.String("run_id", id), ok
		},
		func(ctx context.Context) (slog.Attr, bool) {
			email, ok := ctx.Value(recipientKey{}).(string)
			return slog.String("recipient", email), ok && email != ""
		},
	}
}
