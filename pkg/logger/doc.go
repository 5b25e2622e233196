// Package logger builds slog loggers with context extraction and optional
// Sentry reporting.
//
// Context extractors pull values such as a run ID out of the context and add
// them to every record logged with a *Context method:
//
//	runID := func(ctx context.Context) (slog.Attr, bool) {
//		if id, ok := ctx.Value(runIDKey{}).(string); ok {
//			return slog.String("run_id", id), true
//		}
//		return slog.Attr{}, false
//	}
//	log := logger.New(logger.Config{Level: slog.LevelInfo}, runID)
//
// NewWithSentry fans records out to stdout and Sentry. Errors become Sentry
// issues; warnings and errors are kept as Sentry logs. Without a DSN it
// behaves like New.
//
// NewNope returns a logger that discards everything, for tests.
package logger
