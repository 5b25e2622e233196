package pipeline

import (
	"errors"
	"time"

	"github.com/dmitrymomot/horoscope/pkg/horoscope"
)

// Outcome is the result of one delivery.
type Outcome struct {
	Err       error          `json:"-"`
	Recipient string         `json:"recipient"`
	Sign      horoscope.Sign `json:"sign"`
	Language  string         `json:"language,omitempty"`
	Receipt   string         `json:"receipt,omitempty"`
	Stage     Stage          `json:"failed_stage,omitempty"`
	Error     string         `json:"error,omitempty"`
	Duration  time.Duration  `json:"duration_ns"`
}

// OK reports whether the email was handed to the transport.
func (o Outcome) OK() bool {
	return o.Err == nil
}

func (o *Outcome) fail(err *StageError) {
	o.Err = err
	o.Stage = err.Stage
	o.Error = err.Error()
}

// Report summarizes one run.
type Report struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Outcomes   []Outcome `json:"outcomes"`
}

// Succeeded counts successful deliveries.
func (r *Report) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}

// Failed counts failed deliveries.
func (r *Report) Failed() int {
	return len(r.Outcomes) - r.Succeeded()
}

// Err joins every delivery error, or returns nil when all succeeded.
func (r *Report) Err() error {
	var errs []error
	for _, o := range r.Outcomes {
		if o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	return errors.Join(errs...)
}
