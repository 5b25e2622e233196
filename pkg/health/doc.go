// Package health provides liveness and readiness HTTP handlers.
//
// Readiness runs named checks in parallel under a shared timeout:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"scheduler":  scheduler.Healthcheck(),
//		"recipients": health.FileReadable(cfg.RecipientsFile),
//	}, health.WithLogger(log)))
//
// Handlers answer in plain text unless the client sends
// Accept: application/json or ?format=json. A failing readiness probe lists
// each failing check on its own line. WithDetails adds application state,
// for example the last run's failure count, to the JSON body.
package health
