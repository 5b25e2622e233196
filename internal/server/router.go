// Package server exposes the daemon's HTTP surface: health probes, the
// latest run report and a manual run trigger.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/horoscope/internal/pipeline"
	"github.com/dmitrymomot/horoscope/internal/schedule"
	"github.com/dmitrymomot/horoscope/pkg/health"
	"github.com/dmitrymomot/horoscope/pkg/logger"
)

// Runner is the scheduler surface the HTTP handlers need.
type Runner interface {
	Trigger() error
	RunNow(ctx context.Context) (*pipeline.Report, error)
	Last() *pipeline.Report
	Running() bool
	Next() time.Time
}

type runSummary struct {
	Report    *pipeline.Report `json:"report,omitempty"`
	NextRun   time.Time        `json:"next_run"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Running   bool             `json:"running"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	runner Runner
	logger *slog.Logger
}

// NewRouter builds the HTTP handler. A nil logger discards output.
func NewRouter(runner Runner, checks health.Checks, log *slog.Logger) http.Handler {
	if log == nil {
		log = logger.NewNope()
	}
	h := &handlers{runner: runner, logger: log}

	r := chi.NewRouter()
	r.Use(requestID, logRequests(log))

	r.Get("/health/live", health.LivenessHandler())
	r.Get("/health/ready", health.ReadinessHandler(checks,
		health.WithLogger(log),
		health.WithDetails(h.runState),
	))

	r.Route("/runs", func(r chi.Router) {
		r.Get("/latest", h.latest)
		r.Post("/", h.trigger)
	})

	return r
}

func (h *handlers) latest(w http.ResponseWriter, r *http.Request) {
	report := h.runner.Last()
	if report == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no run has completed yet"})
		return
	}

	writeJSON(w, http.StatusOK, h.summary(report))
}

func (h *handlers) summary(report *pipeline.Report) runSummary {
	return runSummary{
		Report:    report,
		NextRun:   h.runner.Next(),
		Succeeded: report.Succeeded(),
		Failed:    report.Failed(),
		Running:   h.runner.Running(),
	}
}

// runState is the readiness detail block: schedule position and the
// outcome of the last completed run.
func (h *handlers) runState(context.Context) map[string]any {
	state := map[string]any{
		"next_run": h.runner.Next(),
		"running":  h.runner.Running(),
	}
	if report := h.runner.Last(); report != nil {
		state["last_run_id"] = report.ID
		state["last_run_finished_at"] = report.FinishedAt
		state["last_run_succeeded"] = report.Succeeded()
		state["last_run_failed"] = report.Failed()
	}
	return state
}

// trigger starts a run in the background, or with ?wait=true runs it to
// completion and answers with its report. A waiting run is not cancelled
// when the client disconnects.
func (h *handlers) trigger(w http.ResponseWriter, r *http.Request) {
	if wait, _ := strconv.ParseBool(r.URL.Query().Get("wait")); wait {
		h.runAndWait(w, r)
		return
	}

	err := h.runner.Trigger()
	switch {
	case err == nil:
		h.logger.InfoContext(r.Context(), "run triggered over http")
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
	case errors.Is(err, schedule.ErrRunInProgress):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, schedule.ErrNotStarted):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	default:
		h.logger.ErrorContext(r.Context(), "trigger failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (h *handlers) runAndWait(w http.ResponseWriter, r *http.Request) {
	report, err := h.runner.RunNow(context.WithoutCancel(r.Context()))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, h.summary(report))
	case errors.Is(err, schedule.ErrRunInProgress):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		h.logger.ErrorContext(r.Context(), "run failed to start", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
