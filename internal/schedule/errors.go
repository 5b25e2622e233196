package schedule

import "errors"

var (
	// ErrInvalidSpec is returned for a cron expression that does not parse.
	ErrInvalidSpec = errors.New("schedule: invalid cron expression")

	// ErrRunInProgress is returned when a run is requested while another is active.
	ErrRunInProgress = errors.New("schedule: run already in progress")

	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("schedule: already started")

	// ErrNotStarted is returned when the scheduler is stopped or checked before Start.
	ErrNotStarted = errors.New("schedule: not started")
)
